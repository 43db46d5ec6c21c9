package capture

import "strings"

// Outcome is the classification of one capture attempt.
type Outcome int

const (
	// OutcomeSuccess means gphoto2 wrote nothing to stderr.
	OutcomeSuccess Outcome = iota
	// OutcomeTransient means the USB device was claimed by another process.
	OutcomeTransient
	// OutcomeFailed means any other stderr output.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTransient:
		return "transient-usb-error"
	case OutcomeFailed:
		return "error"
	default:
		return "unknown"
	}
}

// usbClaimMarkers identify a USB device held by another process, in the
// English and Portuguese gphoto2 locales, plus libgphoto2's -53 error code
// (GP_ERROR_IO_USB_CLAIM).
var usbClaimMarkers = []string{
	"Could not claim",
	"Não foi possível contactar",
	"Error (-53",
	"Erro (-53",
	"Could not claim the USB device",
}

// Classify maps gphoto2's stderr to an Outcome. The exit code plays no part.
func Classify(stderr string) Outcome {
	if stderr == "" {
		return OutcomeSuccess
	}
	for _, marker := range usbClaimMarkers {
		if strings.Contains(stderr, marker) {
			return OutcomeTransient
		}
	}
	return OutcomeFailed
}

// Attempt records one invocation of the capture command.
type Attempt struct {
	Index   int
	Outcome Outcome
	Stdout  string
	Stderr  string
}
