package capability

// BookingResult is the output of the book_demo capability, fed back to the
// model and surfaced to the caller as calendly_url.
type BookingResult struct {
	CalendlyURL string `json:"calendly_url"`
	Message     string `json:"message"`
}

// bookingMessage is the fixed confirmation the model receives as the tool
// result. Calendly collects the prospect's details, so the agent never asks
// for them.
const bookingMessage = "Perfect! I've prepared your demo booking link below. " +
	"Click it to choose a time that works best for you. " +
	"You'll be able to provide your details and select a time slot directly through Calendly."

// Booker produces demo booking results. It is a pure function of
// configuration; the reason argument is accepted for the model's benefit but
// does not change the outcome.
type Booker struct {
	calendlyURL string
}

// NewBooker creates a Booker handing out the given Calendly link.
func NewBooker(calendlyURL string) *Booker {
	return &Booker{calendlyURL: calendlyURL}
}

// Book returns the booking link and confirmation message.
func (b *Booker) Book(BookDemoArgs) BookingResult {
	return BookingResult{
		CalendlyURL: b.calendlyURL,
		Message:     bookingMessage,
	}
}
