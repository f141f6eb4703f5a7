package returns

import "context"

// Template keys for the "what changed" text.
const (
	TemplateNewPosition   = "NewPositionAdded"
	TemplateStatusChanged = "PositionStatusHasChanged"
)

// DifferenceResolver describes what changed in a return.
type DifferenceResolver struct {
	templates Templates
	statuses  Statuses
}

func NewDifferenceResolver(templates Templates, statuses Statuses) *DifferenceResolver {
	return &DifferenceResolver{templates: templates, statuses: statuses}
}

// Resolve renders the new-position text for NEW events and the from/to
// status text for CHANGE events carrying both codes. Anything else yields
// "", which the context builder rejects.
func (r *DifferenceResolver) Resolve(ctx context.Context, event ChangeEvent, resellerID int64) string {
	switch event.NotificationType {
	case TypeNew:
		return r.templates.Render(ctx, TemplateNewPosition, nil, resellerID)
	case TypeChange:
		diff := event.Differences
		if diff == nil || diff.From == 0 || diff.To == 0 {
			return ""
		}
		return r.templates.Render(ctx, TemplateStatusChanged, map[string]string{
			"FROM": r.statuses.Name(ctx, diff.From),
			"TO":   r.statuses.Name(ctx, diff.To),
		}, resellerID)
	default:
		return ""
	}
}
