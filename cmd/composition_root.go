package cmd

import (
	"fmt"
	"log/slog"

	"communitydelivery/internal/adapters/out/crypto"
	"communitydelivery/internal/adapters/out/geo"
	"communitydelivery/internal/adapters/out/notify"
	"communitydelivery/internal/adapters/out/postgres"
	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/application/usecases/queries"
	"communitydelivery/internal/core/domain/model/delivery"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/services"
	"communitydelivery/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers. Handlers
// are cheap value types, so each Create method builds a fresh one.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	geocoder      ports.Geocoder
	codec         ports.PIICodec
	notifier      ports.Notifier
	serviceArea   services.ServiceArea
	capacityGuard services.CapacityGuard
	requeuePolicy delivery.RequeuePolicy
}

// NewCompositionRoot builds the shared adapters from configuration. Fails
// when the PII key, service area, or policy values are invalid.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	codec, err := crypto.NewChaChaPIICodec(cfg.PIIKey)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("pii codec: %w", err)
	}

	center, err := kernel.NewGeoPoint(cfg.ServiceAreaLat, cfg.ServiceAreaLng)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("service area center: %w", err)
	}
	serviceArea, err := services.NewServiceArea(center, cfg.ServiceAreaRadiusMiles)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("service area: %w", err)
	}

	capacityGuard, err := services.NewCapacityGuard(cfg.ClaimCeiling)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("capacity guard: %w", err)
	}

	requeuePolicy, err := delivery.NewRequeuePolicy(cfg.CancelBoost, cfg.ReleaseBoost)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("requeue policy: %w", err)
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:      geo.NewHTTPGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey),
		codec:         codec,
		notifier:      notify.NewLogNotifier(logger),
		serviceArea:   serviceArea,
		capacityGuard: capacityGuard,
		requeuePolicy: requeuePolicy,
	}, nil
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.CreateDeliveryUoWFactory = FuncCreateDeliveryUoWFactory(func() commands.CreateDeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.geocoder, c.serviceArea)
}

func (c *CompositionRoot) CreateClaimDeliveryCommandHandler() commands.ClaimDeliveryCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimDeliveryCommandHandler(f, c.capacityGuard, c.notifier)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.ClaimUoWFactory = FuncClaimUoWFactory(func() commands.ClaimUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateReleaseClaimCommandHandler() commands.ReleaseClaimCommandHandler {
	return commands.NewReleaseClaimCommandHandler(c.deliveryUoWFactory(), c.requeuePolicy, c.notifier)
}

func (c *CompositionRoot) CreateCancelByRecipientCommandHandler() commands.CancelByRecipientCommandHandler {
	return commands.NewCancelByRecipientCommandHandler(c.deliveryUoWFactory(), c.requeuePolicy, c.notifier)
}

func (c *CompositionRoot) CreateCancelByAdminCommandHandler() commands.CancelByAdminCommandHandler {
	return commands.NewCancelByAdminCommandHandler(c.deliveryUoWFactory(), c.requeuePolicy, c.notifier)
}

func (c *CompositionRoot) CreateRevealContactCommandHandler() commands.RevealContactCommandHandler {
	var f commands.ContactUoWFactory = FuncContactUoWFactory(func() commands.ContactUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRevealContactCommandHandler(f, c.codec)
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitRatingCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateVolunteerCommandHandler() commands.CreateVolunteerCommandHandler {
	return commands.NewCreateVolunteerCommandHandler(c.volunteerUoWFactory(), c.geocoder)
}

func (c *CompositionRoot) CreateReviewVolunteerCommandHandler() commands.ReviewVolunteerCommandHandler {
	return commands.NewReviewVolunteerCommandHandler(c.volunteerUoWFactory())
}

func (c *CompositionRoot) CreateCreateRecipientCommandHandler() commands.CreateRecipientCommandHandler {
	return commands.NewCreateRecipientCommandHandler(c.recipientUoWFactory(), c.codec, c.geocoder, c.serviceArea)
}

func (c *CompositionRoot) CreateDeleteRecipientCommandHandler() commands.DeleteRecipientCommandHandler {
	var f commands.DeleteRecipientUoWFactory = FuncDeleteRecipientUoWFactory(func() commands.DeleteRecipientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteRecipientCommandHandler(f)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.messageUoWFactory())
}

func (c *CompositionRoot) CreateMarkMessagesReadCommandHandler() commands.MarkMessagesReadCommandHandler {
	return commands.NewMarkMessagesReadCommandHandler(c.messageUoWFactory())
}

func (c *CompositionRoot) CreatePurgeInactiveRecipientsCommandHandler() commands.PurgeInactiveRecipientsCommandHandler {
	return commands.NewPurgeInactiveRecipientsCommandHandler(c.recipientUoWFactory())
}

func (c *CompositionRoot) CreateGetAvailableDeliveriesQueryHandler() queries.GetAvailableDeliveriesQueryHandler {
	return queries.NewGetAvailableDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVolunteerBoardQueryHandler() queries.GetVolunteerBoardQueryHandler {
	return queries.NewGetVolunteerBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryAuditQueryHandler() queries.GetDeliveryAuditQueryHandler {
	return queries.NewGetDeliveryAuditQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartyAuditQueryHandler() queries.GetPartyAuditQueryHandler {
	return queries.NewGetPartyAuditQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryMessagesQueryHandler() queries.GetDeliveryMessagesQueryHandler {
	return queries.NewGetDeliveryMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadMessageCountQueryHandler() queries.GetUnreadMessageCountQueryHandler {
	return queries.NewGetUnreadMessageCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) volunteerUoWFactory() commands.VolunteerUoWFactory {
	return FuncVolunteerUoWFactory(func() commands.VolunteerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) recipientUoWFactory() commands.RecipientUoWFactory {
	return FuncRecipientUoWFactory(func() commands.RecipientUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) messageUoWFactory() commands.MessageUoWFactory {
	return FuncMessageUoWFactory(func() commands.MessageUoW {
		return c.uowFactory.Create()
	})
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCreateDeliveryUoWFactory func() commands.CreateDeliveryUoW

func (f FuncCreateDeliveryUoWFactory) Create() commands.CreateDeliveryUoW {
	return f()
}

type FuncClaimUoWFactory func() commands.ClaimUoW

func (f FuncClaimUoWFactory) Create() commands.ClaimUoW {
	return f()
}

type FuncVolunteerUoWFactory func() commands.VolunteerUoW

func (f FuncVolunteerUoWFactory) Create() commands.VolunteerUoW {
	return f()
}

type FuncRecipientUoWFactory func() commands.RecipientUoW

func (f FuncRecipientUoWFactory) Create() commands.RecipientUoW {
	return f()
}

type FuncDeleteRecipientUoWFactory func() commands.DeleteRecipientUoW

func (f FuncDeleteRecipientUoWFactory) Create() commands.DeleteRecipientUoW {
	return f()
}

type FuncContactUoWFactory func() commands.ContactUoW

func (f FuncContactUoWFactory) Create() commands.ContactUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}
