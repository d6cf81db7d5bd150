package domain

import "encoding/json"

type ArtifactKind string

const (
	ArtifactStudyMaterials ArtifactKind = "studyMaterials"
	ArtifactEvaluations    ArtifactKind = "evaluations"
	ArtifactQuizzes        ArtifactKind = "quizzes"
	ArtifactMedia          ArtifactKind = "media"
)

// PublicationOrder is the fixed order in which the orchestrator walks artifact
// kinds. The kinds are independent Classroom objects, so the order only matters
// for result stability.
var PublicationOrder = []ArtifactKind{
	ArtifactStudyMaterials,
	ArtifactEvaluations,
	ArtifactQuizzes,
	ArtifactMedia,
}

// PublicationRequest is one educator call: every field is optional, but at
// least one content field must be present or the request is rejected before
// any external call is made.
type PublicationRequest struct {
	Subject          string `json:"subject,omitempty"`
	StudyMaterials   string `json:"studyMaterials,omitempty"`
	Evaluations      string `json:"evaluations,omitempty"`
	Quizzes          string `json:"quizzes,omitempty"`
	ImageDataURI     string `json:"imageDataUri,omitempty"`
	AudioDataURI     string `json:"audioDataUri,omitempty"`
	AltText          string `json:"altText,omitempty"`
	MediaDescription string `json:"mediaDescription,omitempty"`
}

func (r PublicationRequest) HasContent() bool {
	return r.StudyMaterials != "" || r.Evaluations != "" || r.Quizzes != "" || r.ImageDataURI != ""
}

// Has reports whether the request carries content for the given kind. The
// media kind is keyed on the image payload; what gets attached alongside it is
// decided by the media publisher.
func (r PublicationRequest) Has(kind ArtifactKind) bool {
	switch kind {
	case ArtifactStudyMaterials:
		return r.StudyMaterials != ""
	case ArtifactEvaluations:
		return r.Evaluations != ""
	case ArtifactQuizzes:
		return r.Quizzes != ""
	case ArtifactMedia:
		return r.ImageDataURI != ""
	default:
		return false
	}
}

// QuizQuestion is the structured form of the LLM's semi-structured quiz text.
// Options are ordered: index 0 through 3 map to choices A through D.
type QuizQuestion struct {
	Question string    `json:"question"`
	Options  [4]string `json:"options"`
}

type TopicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoredAssetRef is the opaque reference the blob store hands back after an
// upload. It is attached by reference to every work item that needs it within
// the same publication; the bytes are never re-uploaded.
type StoredAssetRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
}

type ErrorDescriptor struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	ErrKindUploadFailed     = "upload_failed"
	ErrKindPermissionFailed = "permission_failed"
	ErrKindPublishFailed    = "publish_failed"
	ErrKindInvalidPayload   = "invalid_payload"
	ErrKindTimeout          = "timeout"
)

// Outcome is one entry of the result map: either the raw LMS work item or an
// error descriptor, never both.
type Outcome struct {
	Item interface{}
	Err  *ErrorDescriptor
}

func OK(item interface{}) Outcome       { return Outcome{Item: item} }
func Failed(e *ErrorDescriptor) Outcome { return Outcome{Err: e} }

func (o Outcome) Succeeded() bool { return o.Err == nil }

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Err != nil {
		return json.Marshal(struct {
			Error *ErrorDescriptor `json:"error"`
		}{o.Err})
	}
	return json.Marshal(o.Item)
}

// PublicationResult maps each requested artifact kind to its outcome. Kinds
// absent from the request are absent from the map. Built once by the
// orchestrator and immutable afterward.
type PublicationResult map[ArtifactKind]Outcome

func (r PublicationResult) Counts() (succeeded, failed int) {
	for _, o := range r {
		if o.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
