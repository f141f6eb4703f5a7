package returns

import (
	"context"
	"fmt"
	"log/slog"

	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
	"returnnotify/internal/services"
)

// Caller-facing validation messages.
const (
	msgEmptyNotificationType = "Empty notificationType"
	msgSellerNotFound        = "Seller not found"
	msgClientNotFound        = "Client not found"
	msgCreatorNotFound       = "Creator not found"
	msgExpertNotFound        = "Expert not found"
)

// Notice is a validated event together with everything needed to send it.
type Notice struct {
	Event    ChangeEvent
	Reseller *directory.Reseller
	Client   *directory.Contractor
	Creator  *directory.Employee
	Expert   *directory.Employee
	Context  RenderingContext
}

// ResellerID returns the id of the validated reseller.
func (n *Notice) ResellerID() int64 {
	return n.Reseller.ID
}

// Builder validates an event and assembles its rendering context.
type Builder struct {
	resellers Resellers
	clients   Clients
	employees Employees
	resolver  *DifferenceResolver
	logger    *slog.Logger
}

func NewBuilder(resellers Resellers, clients Clients, employees Employees, resolver *DifferenceResolver, logger *slog.Logger) *Builder {
	return &Builder{
		resellers: resellers,
		clients:   clients,
		employees: employees,
		resolver:  resolver,
		logger:    logging.NewComponentLogger(logger, "builder"),
	}
}

// Build resolves every entity the event references and fills the rendering
// context. Unresolvable references fail with a BadRequest error; an empty
// placeholder fails with an InternalData error.
func (b *Builder) Build(ctx context.Context, event ChangeEvent) (*Notice, error) {
	if !event.NotificationType.Valid() {
		return nil, services.BadRequest(msgEmptyNotificationType)
	}

	reseller, err := b.resellers.ResellerByID(ctx, event.ResellerID)
	if err != nil {
		return nil, lookupFailure("reseller", err)
	}
	if reseller == nil {
		return nil, services.BadRequest(msgSellerNotFound)
	}

	client, err := b.clients.ContractorByID(ctx, event.ClientID)
	if err != nil {
		return nil, lookupFailure("client", err)
	}
	if client == nil || !client.IsCustomer() || client.ResellerID != reseller.ID {
		return nil, services.BadRequest(msgClientNotFound)
	}

	creator, err := b.employees.EmployeeByID(ctx, event.CreatorID)
	if err != nil {
		return nil, lookupFailure("creator", err)
	}
	if creator == nil {
		return nil, services.BadRequest(msgCreatorNotFound)
	}

	expert, err := b.employees.EmployeeByID(ctx, event.ExpertID)
	if err != nil {
		return nil, lookupFailure("expert", err)
	}
	if expert == nil {
		return nil, services.BadRequest(msgExpertNotFound)
	}

	values := newRenderingContext()
	values.set(PlaceholderComplaintID, event.ComplaintID)
	values.set(PlaceholderComplaintNumber, event.ComplaintNumber)
	values.set(PlaceholderCreatorID, creator.ID)
	values.set(PlaceholderCreatorName, creator.FullName())
	values.set(PlaceholderExpertID, expert.ID)
	values.set(PlaceholderExpertName, expert.FullName())
	values.set(PlaceholderClientID, client.ID)
	values.set(PlaceholderClientName, client.DisplayName())
	values.set(PlaceholderConsumptionID, event.ConsumptionID)
	values.set(PlaceholderConsumptionNumber, event.ConsumptionNumber)
	values.set(PlaceholderAgreementNumber, event.AgreementNumber)
	values.set(PlaceholderDate, event.Date)
	values.set(PlaceholderDifferences, b.resolver.Resolve(ctx, event, reseller.ID))

	if key, empty := values.firstEmpty(); empty {
		logging.WithContext(ctx, b.logger).Debug("rendering context incomplete",
			logging.Args(logging.DecisionAttrs("context_guard", "rejected", "empty "+key)...)...,
		)
		return nil, services.InternalData(fmt.Sprintf("Template Data (%s) is empty!", key), nil)
	}

	return &Notice{
		Event:    event,
		Reseller: reseller,
		Client:   client,
		Creator:  creator,
		Expert:   expert,
		Context:  values,
	}, nil
}

func lookupFailure(entity string, err error) error {
	return services.Wrap(services.ErrInternalData, "build", "lookup "+entity, "", err)
}
