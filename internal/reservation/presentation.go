package reservation

// Presentation is the fixed badge styling for a status. Accent is a semantic
// key the theme resolves to a concrete color; the core stays UI-framework
// free.
type Presentation struct {
	Label  string
	Accent string
}

var presentations = map[Status]Presentation{
	StatusConfirmed: {Label: "Confirmed", Accent: "success"},
	StatusPending:   {Label: "Pending", Accent: "warning"},
	StatusCompleted: {Label: "Completed", Accent: "info"},
	StatusCancelled: {Label: "Cancelled", Accent: "muted"},
	StatusNoShow:    {Label: "No-show", Accent: "no_show"},
}

// PresentationFor returns the badge presentation for a status. Unknown or
// missing statuses render as pending; that fallback is a defined default,
// not an error path.
func PresentationFor(s Status) Presentation {
	if p, ok := presentations[s]; ok {
		return p
	}
	return presentations[StatusPending]
}
