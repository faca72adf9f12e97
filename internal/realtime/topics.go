package realtime

import "github.com/google/uuid"

// Topic keys mirror the store's index keys: one topic per indexed access
// path, so a write invalidates exactly the listings it can appear in.

func TopicProjects(userID uuid.UUID) string { return "projects:user:" + userID.String() }

func TopicAreas(projectID uuid.UUID) string { return "areas:project:" + projectID.String() }

func TopicTasksByUser(userID uuid.UUID) string { return "tasks:user:" + userID.String() }

func TopicTasksByArea(areaID uuid.UUID) string { return "tasks:area:" + areaID.String() }

func TopicNotesByProject(projectID uuid.UUID) string { return "notes:project:" + projectID.String() }

func TopicNotesByArea(areaID uuid.UUID) string { return "notes:area:" + areaID.String() }

func TopicResourcesByProject(projectID uuid.UUID) string {
	return "resources:project:" + projectID.String()
}

func TopicResourcesByArea(areaID uuid.UUID) string { return "resources:area:" + areaID.String() }
