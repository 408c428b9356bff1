// Package catalog holds the application document models that can reference
// media assets, and batched cursor reads over them.
//
// The document graph is deliberately foreign-key-free: any field may hold an
// opaque media public ID, several of them nested inside arrays of arrays
// (program -> module -> lesson -> slide -> overlay/resource). Nested content
// is persisted as JSON columns; the lifecycle subsystem only ever reads it.
package catalog

import "time"

// MediaRef is a reference to one stored media asset.
// Kind is the optional stored kind annotation; "" means unannotated.
type MediaRef struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`
}

// User is a marketplace account.
type User struct {
	ID             string    `gorm:"primaryKey;size:64"`
	Email          string    `gorm:"size:255;index"`
	DisplayName    string    `gorm:"size:255"`
	ProfilePicture *MediaRef `gorm:"serializer:json"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Coach is a published coach profile.
type Coach struct {
	ID             string     `gorm:"primaryKey;size:64"`
	UserID         string     `gorm:"size:64;index"`
	Headline       string     `gorm:"size:512"`
	ProfilePicture *MediaRef  `gorm:"serializer:json"`
	CoverPhoto     *MediaRef  `gorm:"serializer:json"`
	Gallery        []MediaRef `gorm:"serializer:json"`

	// VideoIntroduction is always a video regardless of any stored kind
	// annotation.
	VideoIntroduction *MediaRef `gorm:"serializer:json"`

	// VerificationDocuments are always raw uploads (IDs, certificates).
	VerificationDocuments []MediaRef `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Program is a structured coaching program.
type Program struct {
	ID           string    `gorm:"primaryKey;size:64"`
	CoachID      string    `gorm:"size:64;index"`
	Title        string    `gorm:"size:512"`
	CoverImage   *MediaRef `gorm:"serializer:json"`
	PreviewVideo *MediaRef `gorm:"serializer:json"`
	Modules      []Module  `gorm:"serializer:json"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Module is one section of a program.
type Module struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons,omitempty"`
}

// Lesson is one unit of a module.
type Lesson struct {
	Title   string         `json:"title"`
	Content *LessonContent `json:"content,omitempty"`
}

// LessonContent holds the asset-bearing payload of a lesson.
type LessonContent struct {
	Files        []MediaRef    `json:"files,omitempty"`
	Presentation *Presentation `json:"presentation,omitempty"`
}

// Presentation is a slide deck attached to a lesson.
type Presentation struct {
	Slides []Slide `json:"slides,omitempty"`
}

// Slide is one slide of a presentation. ImageID and AudioID are direct
// public IDs whose kinds are fixed by the field.
type Slide struct {
	ImageID   string     `json:"imageId,omitempty"`
	AudioID   string     `json:"audioId,omitempty"`
	Overlays  []Overlay  `json:"overlays,omitempty"`
	Resources []MediaRef `json:"resources,omitempty"`
}

// Overlay is an image layered on top of a slide.
type Overlay struct {
	ImageID string `json:"imageId,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// Session is a booked coaching session.
type Session struct {
	ID       string `gorm:"primaryKey;size:64"`
	CoachID  string `gorm:"size:64;index"`
	ClientID string `gorm:"size:64;index"`

	// Recording is always a video.
	Recording *MediaRef `gorm:"serializer:json"`

	SharedFiles []MediaRef `gorm:"serializer:json"`
	Whiteboards []MediaRef `gorm:"serializer:json"`
	StartsAt    time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Message is one chat message between a coach and a client.
type Message struct {
	ID             string     `gorm:"primaryKey;size:64"`
	ConversationID string     `gorm:"size:64;index"`
	SenderID       string     `gorm:"size:64"`
	Body           string     `gorm:"size:4096"`
	Attachments    []MediaRef `gorm:"serializer:json"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

// Invoice is a B2B invoice issued to a client organization.
type Invoice struct {
	ID     string `gorm:"primaryKey;size:64"`
	Number string `gorm:"size:64;uniqueIndex"`

	// DocumentID is the synthetic public ID of the generated invoice PDF,
	// derived from the invoice number at generation time. Always raw.
	DocumentID string `gorm:"size:255"`

	Logo      *MediaRef `gorm:"serializer:json"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Lead is an inbound sales lead, possibly with uploaded attachments.
type Lead struct {
	ID          string     `gorm:"primaryKey;size:64"`
	Email       string     `gorm:"size:255;index"`
	Attachments []MediaRef `gorm:"serializer:json"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

// Enrollment tracks one user's progress through a program.
type Enrollment struct {
	ID          string       `gorm:"primaryKey;size:64"`
	ProgramID   string       `gorm:"size:64;index"`
	UserID      string       `gorm:"size:64;index"`
	Certificate *MediaRef    `gorm:"serializer:json"`
	Submissions []Submission `gorm:"serializer:json"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

// Submission is one assignment upload inside an enrollment.
type Submission struct {
	LessonTitle string     `json:"lessonTitle,omitempty"`
	Files       []MediaRef `json:"files,omitempty"`
}
