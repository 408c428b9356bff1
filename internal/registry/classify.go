package registry

import "strings"

// Classification tags derived from the storage folder. Informational only.
const (
	ClassProfilePicture   = "profile_picture"
	ClassProgramAsset     = "program_asset"
	ClassSessionRecording = "session_recording"
	ClassB2BInvoice       = "b2b_invoice"
	ClassChatAttachment   = "chat_attachment"
	ClassUnknown          = "unknown"
)

// classPrefixes maps folder prefixes to classification tags. Order matters:
// the first matching prefix wins.
var classPrefixes = []struct {
	prefix string
	class  string
}{
	{"generated/invoices", ClassB2BInvoice},
	{"chat", ClassChatAttachment},
	{"avatars", ClassProfilePicture},
	{"coaches", ClassProfilePicture},
	{"programs", ClassProgramAsset},
	{"enrollments", ClassProgramAsset},
	{"sessions", ClassSessionRecording},
}

// Classify derives a best-effort classification tag from an asset's folder.
func Classify(folder string) string {
	for _, c := range classPrefixes {
		if folder == c.prefix || strings.HasPrefix(folder, c.prefix+"/") {
			return c.class
		}
	}
	return ClassUnknown
}
