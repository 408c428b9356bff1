package extract

import (
	"testing"

	"github.com/mentora-io/assetgc/internal/catalog"
	"github.com/mentora-io/assetgc/internal/mediastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exhaustiveness tests: each document below carries one value in every
// asset-bearing field its schema has. The extractor must return exactly that
// set — a missing ID here means live assets would be swept as orphans.

func TestUserRefsExhaustive(t *testing.T) {
	u := &catalog.User{
		ID:             "u1",
		ProfilePicture: &catalog.MediaRef{ID: "avatars/u1/pic"},
	}

	s := UserRefs(u)
	assert.Equal(t, []string{"avatars/u1/pic"}, s.IDs())

	ref, _ := s.Get("avatars/u1/pic")
	assert.Equal(t, mediastore.KindImage, ref.Kind)
	assert.Equal(t, "users/u1/profilePicture", ref.OwnerPath)
}

func TestCoachRefsExhaustive(t *testing.T) {
	c := &catalog.Coach{
		ID:             "c1",
		ProfilePicture: &catalog.MediaRef{ID: "coaches/c1/pic"},
		CoverPhoto:     &catalog.MediaRef{ID: "coaches/c1/cover"},
		Gallery: []catalog.MediaRef{
			{ID: "coaches/c1/gal0"},
			{ID: "coaches/c1/gal1", Kind: "video"},
		},
		VideoIntroduction: &catalog.MediaRef{ID: "coaches/c1/intro", Kind: "image"},
		VerificationDocuments: []catalog.MediaRef{
			{ID: "coaches/c1/passport", Kind: "image"},
		},
	}

	s := CoachRefs(c)
	assert.ElementsMatch(t, []string{
		"coaches/c1/pic",
		"coaches/c1/cover",
		"coaches/c1/gal0",
		"coaches/c1/gal1",
		"coaches/c1/intro",
		"coaches/c1/passport",
	}, s.IDs())

	// Annotation wins on generic fields.
	gal1, _ := s.Get("coaches/c1/gal1")
	assert.Equal(t, mediastore.KindVideo, gal1.Kind)

	// The field forces the kind for video introductions and verification
	// documents, even against a stored annotation.
	intro, _ := s.Get("coaches/c1/intro")
	assert.Equal(t, mediastore.KindVideo, intro.Kind)
	passport, _ := s.Get("coaches/c1/passport")
	assert.Equal(t, mediastore.KindRaw, passport.Kind)
}

func TestProgramRefsExhaustive(t *testing.T) {
	p := &catalog.Program{
		ID:           "p1",
		CoverImage:   &catalog.MediaRef{ID: "programs/p1/cover"},
		PreviewVideo: &catalog.MediaRef{ID: "programs/p1/preview"},
		Modules: []catalog.Module{
			{
				Title: "Module one",
				Lessons: []catalog.Lesson{
					{
						Title: "Lesson one",
						Content: &catalog.LessonContent{
							Files: []catalog.MediaRef{
								{ID: "programs/p1/worksheet", Kind: "raw"},
							},
							Presentation: &catalog.Presentation{
								Slides: []catalog.Slide{
									{
										ImageID: "programs/p1/slide0",
										AudioID: "programs/p1/narration0",
										Overlays: []catalog.Overlay{
											{ImageID: "programs/p1/overlay0"},
										},
										Resources: []catalog.MediaRef{
											{ID: "programs/p1/handout0"},
										},
									},
								},
							},
						},
					},
					{Title: "Lesson without content"},
				},
			},
		},
	}

	s := ProgramRefs(p)
	assert.ElementsMatch(t, []string{
		"programs/p1/cover",
		"programs/p1/preview",
		"programs/p1/worksheet",
		"programs/p1/slide0",
		"programs/p1/narration0",
		"programs/p1/overlay0",
		"programs/p1/handout0",
	}, s.IDs())

	slide, _ := s.Get("programs/p1/slide0")
	assert.Equal(t, mediastore.KindImage, slide.Kind)
	narration, _ := s.Get("programs/p1/narration0")
	assert.Equal(t, mediastore.KindVideo, narration.Kind)
	preview, _ := s.Get("programs/p1/preview")
	assert.Equal(t, mediastore.KindVideo, preview.Kind)
	handout, _ := s.Get("programs/p1/handout0")
	assert.Equal(t, mediastore.KindRaw, handout.Kind)
}

func TestSessionRefsExhaustive(t *testing.T) {
	sess := &catalog.Session{
		ID:        "s1",
		Recording: &catalog.MediaRef{ID: "sessions/s1/rec", Kind: "raw"},
		SharedFiles: []catalog.MediaRef{
			{ID: "sessions/s1/notes"},
		},
		Whiteboards: []catalog.MediaRef{
			{ID: "sessions/s1/board0"},
		},
	}

	s := SessionRefs(sess)
	assert.ElementsMatch(t, []string{
		"sessions/s1/rec",
		"sessions/s1/notes",
		"sessions/s1/board0",
	}, s.IDs())

	rec, _ := s.Get("sessions/s1/rec")
	assert.Equal(t, mediastore.KindVideo, rec.Kind)
	board, _ := s.Get("sessions/s1/board0")
	assert.Equal(t, mediastore.KindImage, board.Kind)
}

func TestMessageRefsExhaustive(t *testing.T) {
	m := &catalog.Message{
		ID: "m1",
		Attachments: []catalog.MediaRef{
			{ID: "chat/m1/att0"},
			{ID: "chat/m1/att1", Kind: "image"},
		},
	}

	s := MessageRefs(m)
	assert.ElementsMatch(t, []string{"chat/m1/att0", "chat/m1/att1"}, s.IDs())

	att0, _ := s.Get("chat/m1/att0")
	assert.Equal(t, mediastore.KindRaw, att0.Kind)
	att1, _ := s.Get("chat/m1/att1")
	assert.Equal(t, mediastore.KindImage, att1.Kind)
}

func TestInvoiceRefsExhaustive(t *testing.T) {
	inv := &catalog.Invoice{
		ID:         "inv1",
		Number:     "2026-0042",
		DocumentID: "generated/invoices/2026-0042",
		Logo:       &catalog.MediaRef{ID: "branding/acme/logo"},
	}

	s := InvoiceRefs(inv)
	assert.ElementsMatch(t, []string{
		"generated/invoices/2026-0042",
		"branding/acme/logo",
	}, s.IDs())

	doc, _ := s.Get("generated/invoices/2026-0042")
	assert.Equal(t, mediastore.KindRaw, doc.Kind)
}

func TestLeadRefsExhaustive(t *testing.T) {
	l := &catalog.Lead{
		ID:          "l1",
		Attachments: []catalog.MediaRef{{ID: "leads/l1/brief"}},
	}

	s := LeadRefs(l)
	assert.Equal(t, []string{"leads/l1/brief"}, s.IDs())
}

func TestEnrollmentRefsExhaustive(t *testing.T) {
	e := &catalog.Enrollment{
		ID:          "e1",
		Certificate: &catalog.MediaRef{ID: "certs/e1"},
		Submissions: []catalog.Submission{
			{
				LessonTitle: "Lesson one",
				Files: []catalog.MediaRef{
					{ID: "enrollments/e1/sub0"},
					{ID: "enrollments/e1/sub1"},
				},
			},
		},
	}

	s := EnrollmentRefs(e)
	assert.ElementsMatch(t, []string{
		"certs/e1",
		"enrollments/e1/sub0",
		"enrollments/e1/sub1",
	}, s.IDs())
}

// Sparse documents: every nesting level may be absent. Extraction must not
// panic and must return the empty set.

func TestExtractorsNilSafety(t *testing.T) {
	assert.Equal(t, 0, UserRefs(nil).Len())
	assert.Equal(t, 0, CoachRefs(nil).Len())
	assert.Equal(t, 0, ProgramRefs(nil).Len())
	assert.Equal(t, 0, SessionRefs(nil).Len())
	assert.Equal(t, 0, MessageRefs(nil).Len())
	assert.Equal(t, 0, InvoiceRefs(nil).Len())
	assert.Equal(t, 0, LeadRefs(nil).Len())
	assert.Equal(t, 0, EnrollmentRefs(nil).Len())

	assert.Equal(t, 0, UserRefs(&catalog.User{ID: "u"}).Len())
	assert.Equal(t, 0, CoachRefs(&catalog.Coach{ID: "c"}).Len())
	assert.Equal(t, 0, SessionRefs(&catalog.Session{ID: "s"}).Len())
	assert.Equal(t, 0, InvoiceRefs(&catalog.Invoice{ID: "i"}).Len())

	sparse := &catalog.Program{
		ID: "p",
		Modules: []catalog.Module{
			{Lessons: []catalog.Lesson{
				{Content: &catalog.LessonContent{
					Presentation: &catalog.Presentation{
						Slides: []catalog.Slide{{}},
					},
				}},
				{},
			}},
			{},
		},
	}
	assert.Equal(t, 0, ProgramRefs(sparse).Len())
}

func TestKindAnnotationIgnoredWhenUnparseable(t *testing.T) {
	u := &catalog.User{
		ID:             "u1",
		ProfilePicture: &catalog.MediaRef{ID: "avatars/u1/pic", Kind: "auto"},
	}

	ref, ok := UserRefs(u).Get("avatars/u1/pic")
	require.True(t, ok)
	assert.Equal(t, mediastore.KindImage, ref.Kind)
}
