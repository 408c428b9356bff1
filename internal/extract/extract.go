package extract

import (
	"fmt"

	"github.com/mentora-io/assetgc/internal/catalog"
	"github.com/mentora-io/assetgc/internal/mediastore"
)

// kindOf resolves a reference's kind. The stored annotation wins when it is
// present and parseable; otherwise fallback applies. Fields whose kind is
// unambiguous (video introduction, verification documents, invoice PDFs)
// bypass this and force the kind outright.
func kindOf(ref catalog.MediaRef, fallback mediastore.Kind) mediastore.Kind {
	if kind, ok := mediastore.ParseKind(ref.Kind); ok {
		return kind
	}
	return fallback
}

func addRef(s *RefSet, ref catalog.MediaRef, fallback mediastore.Kind, path string) {
	if ref.ID == "" {
		return
	}
	s.Add(Ref{ID: ref.ID, Kind: kindOf(ref, fallback), OwnerPath: path})
}

func addForced(s *RefSet, id string, kind mediastore.Kind, path string) {
	if id == "" {
		return
	}
	s.Add(Ref{ID: id, Kind: kind, OwnerPath: path})
}

// UserRefs extracts every asset reference held by a user document.
func UserRefs(u *catalog.User) *RefSet {
	s := NewRefSet()
	if u == nil {
		return s
	}
	if u.ProfilePicture != nil {
		addRef(s, *u.ProfilePicture, mediastore.KindImage, fmt.Sprintf("users/%s/profilePicture", u.ID))
	}
	return s
}

// CoachRefs extracts every asset reference held by a coach document.
func CoachRefs(c *catalog.Coach) *RefSet {
	s := NewRefSet()
	if c == nil {
		return s
	}
	if c.ProfilePicture != nil {
		addRef(s, *c.ProfilePicture, mediastore.KindImage, fmt.Sprintf("coaches/%s/profilePicture", c.ID))
	}
	if c.CoverPhoto != nil {
		addRef(s, *c.CoverPhoto, mediastore.KindImage, fmt.Sprintf("coaches/%s/coverPhoto", c.ID))
	}
	for i, ref := range c.Gallery {
		addRef(s, ref, mediastore.KindImage, fmt.Sprintf("coaches/%s/gallery[%d]", c.ID, i))
	}
	// A video introduction is a video no matter what annotation it carries.
	if c.VideoIntroduction != nil {
		addForced(s, c.VideoIntroduction.ID, mediastore.KindVideo, fmt.Sprintf("coaches/%s/videoIntroduction", c.ID))
	}
	// Verification documents are always raw uploads.
	for i, ref := range c.VerificationDocuments {
		addForced(s, ref.ID, mediastore.KindRaw, fmt.Sprintf("coaches/%s/verificationDocuments[%d]", c.ID, i))
	}
	return s
}

// ProgramRefs extracts every asset reference held by a program document,
// walking module -> lesson -> slide -> overlay/resource nesting in full.
func ProgramRefs(p *catalog.Program) *RefSet {
	s := NewRefSet()
	if p == nil {
		return s
	}
	if p.CoverImage != nil {
		addRef(s, *p.CoverImage, mediastore.KindImage, fmt.Sprintf("programs/%s/coverImage", p.ID))
	}
	if p.PreviewVideo != nil {
		addForced(s, p.PreviewVideo.ID, mediastore.KindVideo, fmt.Sprintf("programs/%s/previewVideo", p.ID))
	}

	for mi, module := range p.Modules {
		for li, lesson := range module.Lessons {
			content := lesson.Content
			if content == nil {
				continue
			}
			base := fmt.Sprintf("programs/%s/modules[%d].lessons[%d].content", p.ID, mi, li)

			for fi, ref := range content.Files {
				addRef(s, ref, mediastore.KindRaw, fmt.Sprintf("%s.files[%d]", base, fi))
			}

			if content.Presentation == nil {
				continue
			}
			for si, slide := range content.Presentation.Slides {
				slideBase := fmt.Sprintf("%s.presentation.slides[%d]", base, si)
				addForced(s, slide.ImageID, mediastore.KindImage, slideBase+".imageId")
				// Slide audio is stored under the video resource kind,
				// the store has no separate audio kind.
				addForced(s, slide.AudioID, mediastore.KindVideo, slideBase+".audioId")
				for oi, overlay := range slide.Overlays {
					addForced(s, overlay.ImageID, mediastore.KindImage, fmt.Sprintf("%s.overlays[%d].imageId", slideBase, oi))
				}
				for ri, ref := range slide.Resources {
					addRef(s, ref, mediastore.KindRaw, fmt.Sprintf("%s.resources[%d]", slideBase, ri))
				}
			}
		}
	}
	return s
}

// SessionRefs extracts every asset reference held by a session document.
func SessionRefs(sess *catalog.Session) *RefSet {
	s := NewRefSet()
	if sess == nil {
		return s
	}
	if sess.Recording != nil {
		addForced(s, sess.Recording.ID, mediastore.KindVideo, fmt.Sprintf("sessions/%s/recording", sess.ID))
	}
	for i, ref := range sess.SharedFiles {
		addRef(s, ref, mediastore.KindRaw, fmt.Sprintf("sessions/%s/sharedFiles[%d]", sess.ID, i))
	}
	for i, ref := range sess.Whiteboards {
		addRef(s, ref, mediastore.KindImage, fmt.Sprintf("sessions/%s/whiteboards[%d]", sess.ID, i))
	}
	return s
}

// MessageRefs extracts every asset reference held by a message document.
func MessageRefs(m *catalog.Message) *RefSet {
	s := NewRefSet()
	if m == nil {
		return s
	}
	for i, ref := range m.Attachments {
		addRef(s, ref, mediastore.KindRaw, fmt.Sprintf("messages/%s/attachments[%d]", m.ID, i))
	}
	return s
}

// InvoiceRefs extracts every asset reference held by an invoice document.
func InvoiceRefs(inv *catalog.Invoice) *RefSet {
	s := NewRefSet()
	if inv == nil {
		return s
	}
	// The generated invoice PDF is referenced by a synthetic public ID
	// derived from the invoice number; it is always raw.
	addForced(s, inv.DocumentID, mediastore.KindRaw, fmt.Sprintf("invoices/%s/documentId", inv.ID))
	if inv.Logo != nil {
		addRef(s, *inv.Logo, mediastore.KindImage, fmt.Sprintf("invoices/%s/logo", inv.ID))
	}
	return s
}

// LeadRefs extracts every asset reference held by a lead document.
func LeadRefs(l *catalog.Lead) *RefSet {
	s := NewRefSet()
	if l == nil {
		return s
	}
	for i, ref := range l.Attachments {
		addRef(s, ref, mediastore.KindRaw, fmt.Sprintf("leads/%s/attachments[%d]", l.ID, i))
	}
	return s
}

// EnrollmentRefs extracts every asset reference held by an enrollment document.
func EnrollmentRefs(e *catalog.Enrollment) *RefSet {
	s := NewRefSet()
	if e == nil {
		return s
	}
	if e.Certificate != nil {
		addRef(s, *e.Certificate, mediastore.KindRaw, fmt.Sprintf("enrollments/%s/certificate", e.ID))
	}
	for si, sub := range e.Submissions {
		for fi, ref := range sub.Files {
			addRef(s, ref, mediastore.KindRaw, fmt.Sprintf("enrollments/%s/submissions[%d].files[%d]", e.ID, si, fi))
		}
	}
	return s
}
