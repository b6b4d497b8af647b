// Package http exposes the use cases over a JSON API. Actor identity comes
// from headers set by the fronting session layer; this adapter trusts them
// and forwards the caller's IP into the audit trail.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"communitydelivery/internal/core/application/usecases/commands"
	"communitydelivery/internal/core/application/usecases/queries"
	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/domain/model/message"
	"communitydelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Actor headers populated by the session layer in front of this service.
const (
	HeaderRecipientID = "X-Recipient-ID"
	HeaderVolunteerID = "X-Volunteer-ID"
	HeaderAdminID     = "X-Admin-ID"
)

const defaultAuditLimit = 100

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler    commands.CreateDeliveryCommandHandler
	claimDeliveryHandler     commands.ClaimDeliveryCommandHandler
	markPickedUpHandler      commands.MarkPickedUpCommandHandler
	completeDeliveryHandler  commands.CompleteDeliveryCommandHandler
	releaseClaimHandler      commands.ReleaseClaimCommandHandler
	cancelByRecipientHandler commands.CancelByRecipientCommandHandler
	cancelByAdminHandler     commands.CancelByAdminCommandHandler
	revealContactHandler     commands.RevealContactCommandHandler
	submitRatingHandler      commands.SubmitRatingCommandHandler
	createVolunteerHandler   commands.CreateVolunteerCommandHandler
	reviewVolunteerHandler   commands.ReviewVolunteerCommandHandler
	createRecipientHandler   commands.CreateRecipientCommandHandler
	deleteRecipientHandler   commands.DeleteRecipientCommandHandler
	sendMessageHandler       commands.SendMessageCommandHandler
	markMessagesReadHandler  commands.MarkMessagesReadCommandHandler

	// Query handlers
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	volunteerBoardHandler      queries.GetVolunteerBoardQueryHandler
	deliveryAuditHandler       queries.GetDeliveryAuditQueryHandler
	partyAuditHandler          queries.GetPartyAuditQueryHandler
	deliveryMessagesHandler    queries.GetDeliveryMessagesQueryHandler
	unreadMessagesHandler      queries.GetUnreadMessageCountQueryHandler

	validate *validator.Validate
	metrics  *Metrics
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	claimDeliveryHandler commands.ClaimDeliveryCommandHandler,
	markPickedUpHandler commands.MarkPickedUpCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	releaseClaimHandler commands.ReleaseClaimCommandHandler,
	cancelByRecipientHandler commands.CancelByRecipientCommandHandler,
	cancelByAdminHandler commands.CancelByAdminCommandHandler,
	revealContactHandler commands.RevealContactCommandHandler,
	submitRatingHandler commands.SubmitRatingCommandHandler,
	createVolunteerHandler commands.CreateVolunteerCommandHandler,
	reviewVolunteerHandler commands.ReviewVolunteerCommandHandler,
	createRecipientHandler commands.CreateRecipientCommandHandler,
	deleteRecipientHandler commands.DeleteRecipientCommandHandler,
	sendMessageHandler commands.SendMessageCommandHandler,
	markMessagesReadHandler commands.MarkMessagesReadCommandHandler,
	availableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	volunteerBoardHandler queries.GetVolunteerBoardQueryHandler,
	deliveryAuditHandler queries.GetDeliveryAuditQueryHandler,
	partyAuditHandler queries.GetPartyAuditQueryHandler,
	deliveryMessagesHandler queries.GetDeliveryMessagesQueryHandler,
	unreadMessagesHandler queries.GetUnreadMessageCountQueryHandler,
	metrics *Metrics,
) *Server {
	return &Server{
		createDeliveryHandler:      createDeliveryHandler,
		claimDeliveryHandler:       claimDeliveryHandler,
		markPickedUpHandler:        markPickedUpHandler,
		completeDeliveryHandler:    completeDeliveryHandler,
		releaseClaimHandler:        releaseClaimHandler,
		cancelByRecipientHandler:   cancelByRecipientHandler,
		cancelByAdminHandler:       cancelByAdminHandler,
		revealContactHandler:       revealContactHandler,
		submitRatingHandler:        submitRatingHandler,
		createVolunteerHandler:     createVolunteerHandler,
		reviewVolunteerHandler:     reviewVolunteerHandler,
		createRecipientHandler:     createRecipientHandler,
		deleteRecipientHandler:     deleteRecipientHandler,
		sendMessageHandler:         sendMessageHandler,
		markMessagesReadHandler:    markMessagesReadHandler,
		availableDeliveriesHandler: availableDeliveriesHandler,
		volunteerBoardHandler:      volunteerBoardHandler,
		deliveryAuditHandler:       deliveryAuditHandler,
		partyAuditHandler:          partyAuditHandler,
		deliveryMessagesHandler:    deliveryMessagesHandler,
		unreadMessagesHandler:      unreadMessagesHandler,
		validate:                   validator.New(),
		metrics:                    metrics,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/recipients", s.CreateRecipient)
	api.DELETE("/recipients/:id", s.DeleteRecipient)
	api.GET("/recipients/:id/audit", s.GetRecipientAudit)

	api.POST("/volunteers", s.CreateVolunteer)
	api.POST("/volunteers/:id/review", s.ReviewVolunteer)
	api.GET("/volunteers/:id/board", s.GetVolunteerBoard)
	api.GET("/volunteers/:id/audit", s.GetVolunteerAudit)

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/available", s.GetAvailableDeliveries)
	api.POST("/deliveries/:id/claim", s.ClaimDelivery)
	api.POST("/deliveries/:id/pickup", s.MarkPickedUp)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/release", s.ReleaseClaim)
	api.POST("/deliveries/:id/cancel", s.CancelByRecipient)
	api.POST("/deliveries/:id/admin-cancel", s.CancelByAdmin)
	api.GET("/deliveries/:id/contact", s.RevealContact)
	api.POST("/deliveries/:id/rating", s.SubmitRating)
	api.GET("/deliveries/:id/audit", s.GetDeliveryAudit)
	api.POST("/deliveries/:id/messages", s.SendMessage)
	api.GET("/deliveries/:id/messages", s.GetDeliveryMessages)
	api.POST("/deliveries/:id/messages/read", s.MarkMessagesRead)
	api.GET("/deliveries/:id/messages/unread", s.GetUnreadMessageCount)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateRecipient handles POST /api/v1/recipients.
func (s *Server) CreateRecipient(ctx echo.Context) error {
	var req createRecipientRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	recipientID := kernel.NewUUID()
	cmd, err := commands.NewCreateRecipientCommand(
		recipientID, req.DisplayName, req.GeneralArea,
		req.Address, req.Phone, req.Notes, ctx.RealIP(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createRecipientHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: recipientID.String()})
}

// DeleteRecipient handles DELETE /api/v1/recipients/:id.
func (s *Server) DeleteRecipient(ctx echo.Context) error {
	recipientID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteRecipientCommand(recipientID, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.deleteRecipientHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateVolunteer handles POST /api/v1/volunteers.
func (s *Server) CreateVolunteer(ctx echo.Context) error {
	var req createVolunteerRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	volunteerID := kernel.NewUUID()
	cmd, err := commands.NewCreateVolunteerCommand(
		volunteerID, req.FullName, req.ServiceArea, req.ServiceAddress,
		req.ServiceRadius, req.AvailabilityNotes, ctx.RealIP(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createVolunteerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdResponse{ID: volunteerID.String()})
}

// ReviewVolunteer handles POST /api/v1/volunteers/:id/review. Admin only.
func (s *Server) ReviewVolunteer(ctx echo.Context) error {
	volunteerID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	adminID, err := headerUUID(ctx, HeaderAdminID)
	if err != nil {
		return writeError(ctx, err)
	}

	var req reviewVolunteerRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReviewVolunteerCommand(
		volunteerID, adminID, reviewDecisionFromString(req.Decision),
		req.Reason, ctx.RealIP(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.reviewVolunteerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateDelivery handles POST /api/v1/deliveries. Recipient only.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	recipientID, err := headerUUID(ctx, HeaderRecipientID)
	if err != nil {
		return writeError(ctx, err)
	}

	var req createDeliveryRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, recipientID, req.StoreName, req.PickupAddress,
		req.OrderName, req.PickupTime, req.EstimatedItems, ctx.RealIP(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.metrics.DeliveriesCreated.Inc()
	return ctx.JSON(http.StatusCreated, createdResponse{ID: deliveryID.String()})
}

// ClaimDelivery handles POST /api/v1/deliveries/:id/claim. Volunteer only.
func (s *Server) ClaimDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	volunteerID, err := headerUUID(ctx, HeaderVolunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewClaimDeliveryCommand(deliveryID, volunteerID, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.claimDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrNotClaimable) {
			s.metrics.ClaimAttempts.WithLabelValues(claimOutcomeLost).Inc()
		} else {
			s.metrics.ClaimAttempts.WithLabelValues(claimOutcomeRejected).Inc()
		}
		return writeError(ctx, err)
	}

	s.metrics.ClaimAttempts.WithLabelValues(claimOutcomeWon).Inc()
	return ctx.NoContent(http.StatusNoContent)
}

// MarkPickedUp handles POST /api/v1/deliveries/:id/pickup. Assigned volunteer
// only.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	volunteerID, err := headerUUID(ctx, HeaderVolunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkPickedUpCommand(deliveryID, volunteerID, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markPickedUpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete. Assigned
// volunteer only.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	volunteerID, err := headerUUID(ctx, HeaderVolunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, volunteerID, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseClaim handles POST /api/v1/deliveries/:id/release. Assigned
// volunteer only.
func (s *Server) ReleaseClaim(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	volunteerID, err := headerUUID(ctx, HeaderVolunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	var req releaseRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReleaseClaimCommand(deliveryID, volunteerID, req.Reason, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.releaseClaimHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelByRecipient handles POST /api/v1/deliveries/:id/cancel. Owning
// recipient only.
func (s *Server) CancelByRecipient(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	recipientID, err := headerUUID(ctx, HeaderRecipientID)
	if err != nil {
		return writeError(ctx, err)
	}

	var req cancelRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelByRecipientCommand(deliveryID, recipientID, req.Reason, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelByRecipientHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelByAdmin handles POST /api/v1/deliveries/:id/admin-cancel. Admin only;
// a reason is mandatory.
func (s *Server) CancelByAdmin(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	adminID, err := headerUUID(ctx, HeaderAdminID)
	if err != nil {
		return writeError(ctx, err)
	}

	var req cancelRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelByAdminCommand(deliveryID, adminID, req.Reason, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelByAdminHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RevealContact handles GET /api/v1/deliveries/:id/contact. Assigned
// volunteer only; every reveal lands in the audit trail.
func (s *Server) RevealContact(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	volunteerID, err := headerUUID(ctx, HeaderVolunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRevealContactCommand(deliveryID, volunteerID, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	contact, err := s.revealContactHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, contactResponse{
		DisplayName: contact.DisplayName,
		Address:     contact.Address,
		Phone:       contact.Phone,
		Notes:       contact.Notes,
	})
}

// SubmitRating handles POST /api/v1/deliveries/:id/rating. Owning recipient
// only, once per delivery.
func (s *Server) SubmitRating(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	recipientID, err := headerUUID(ctx, HeaderRecipientID)
	if err != nil {
		return writeError(ctx, err)
	}

	var req submitRatingRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitRatingCommand(deliveryID, recipientID, req.Score, req.Comment, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.submitRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.metrics.RatingsSubmitted.Inc()
	return ctx.NoContent(http.StatusCreated)
}

// SendMessage handles POST /api/v1/deliveries/:id/messages. Either party of
// the delivery; the side is resolved from the identity headers.
func (s *Server) SendMessage(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	sender, senderID, err := callerSide(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req sendMessageRequest
	if err := s.bind(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSendMessageCommand(deliveryID, sender, senderID, req.Content, ctx.RealIP())
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.sendMessageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// GetDeliveryMessages handles GET /api/v1/deliveries/:id/messages.
func (s *Server) GetDeliveryMessages(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
	}

	query, err := queries.NewGetDeliveryMessagesQuery(deliveryID, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	messages, err := s.deliveryMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]messageResponse, len(messages))
	for i, m := range messages {
		response[i] = messageResponse{
			ID:       m.ID.String(),
			Sender:   m.Sender.String(),
			SenderID: m.SenderID.String(),
			Content:  m.Content,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkMessagesRead handles POST /api/v1/deliveries/:id/messages/read. Either
// party of the delivery.
func (s *Server) MarkMessagesRead(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	reader, readerID, err := callerSide(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkMessagesReadCommand(deliveryID, reader, readerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markMessagesReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetUnreadMessageCount handles GET /api/v1/deliveries/:id/messages/unread.
func (s *Server) GetUnreadMessageCount(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	_, readerID, err := callerSide(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetUnreadMessageCountQuery(deliveryID, readerID)
	if err != nil {
		return writeError(ctx, err)
	}

	count, err := s.unreadMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, unreadCountResponse{Unread: count})
}

// GetAvailableDeliveries handles GET /api/v1/deliveries/available. Volunteer
// only; the board is filtered to the volunteer's service area.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	volunteerID, err := headerUUID(ctx, HeaderVolunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAvailableDeliveriesQuery(volunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveries, err := s.availableDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]availableDeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = availableDeliveryResponse{
			ID:                   d.ID.String(),
			StoreName:            d.StoreName,
			PickupAddress:        d.PickupAddress,
			StoreLocation:        toGeoPointResponse(d.StoreLocation),
			OrderName:            d.OrderName,
			PickupTime:           d.PickupTime,
			EstimatedItems:       d.EstimatedItems,
			Priority:             d.Priority,
			CreatedAt:            d.CreatedAt,
			RecipientDisplayName: d.RecipientDisplayName,
			RecipientArea:        d.RecipientArea,
			RecipientLocation:    toGeoPointResponse(d.RecipientLocation),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetVolunteerBoard handles GET /api/v1/volunteers/:id/board.
func (s *Server) GetVolunteerBoard(ctx echo.Context) error {
	volunteerID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetVolunteerBoardQuery(volunteerID)
	if err != nil {
		return writeError(ctx, err)
	}

	board, err := s.volunteerBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := volunteerBoardResponse{
		VolunteerID:     board.VolunteerID.String(),
		FullName:        board.FullName,
		Status:          board.Status,
		TotalDeliveries: board.TotalDeliveries,
		Active:          make([]boardDeliveryResponse, len(board.Active)),
		RecentCompleted: make([]boardCompletionResponse, len(board.RecentCompleted)),
	}
	if board.AverageRating.Valid {
		avg := board.AverageRating.Decimal.StringFixed(2)
		response.AverageRating = &avg
	}
	for i, d := range board.Active {
		response.Active[i] = boardDeliveryResponse{
			ID:             d.ID.String(),
			StoreName:      d.StoreName,
			PickupAddress:  d.PickupAddress,
			OrderName:      d.OrderName,
			PickupTime:     d.PickupTime,
			EstimatedItems: d.EstimatedItems,
			Status:         d.Status,
			ClaimedAt:      d.ClaimedAt,
		}
	}
	for i, c := range board.RecentCompleted {
		response.RecentCompleted[i] = boardCompletionResponse{
			DeliveryID:  c.DeliveryID.String(),
			StoreName:   c.StoreName,
			OrderName:   c.OrderName,
			CompletedAt: c.CompletedAt,
			RatingScore: c.RatingScore,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryAudit handles GET /api/v1/deliveries/:id/audit.
func (s *Server) GetDeliveryAudit(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryAuditQuery(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.deliveryAuditHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAuditEntryResponses(entries))
}

// GetVolunteerAudit handles GET /api/v1/volunteers/:id/audit.
func (s *Server) GetVolunteerAudit(ctx echo.Context) error {
	return s.getPartyAudit(ctx, queries.PartyVolunteer)
}

// GetRecipientAudit handles GET /api/v1/recipients/:id/audit.
func (s *Server) GetRecipientAudit(ctx echo.Context) error {
	return s.getPartyAudit(ctx, queries.PartyRecipient)
}

func (s *Server) getPartyAudit(ctx echo.Context, party queries.AuditParty) error {
	partyID, err := pathUUID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	limit := defaultAuditLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
	}

	query, err := queries.NewGetPartyAuditQuery(party, partyID, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.partyAuditHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAuditEntryResponses(entries))
}

// bind decodes and shape-validates a request body.
func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := s.validate.Struct(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func headerUUID(ctx echo.Context, header string) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(header)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(header)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(header, err)
	}
	return id, nil
}

// callerSide resolves which side of a delivery is calling from the identity
// headers. The volunteer header wins when both are present.
func callerSide(ctx echo.Context) (message.Sender, kernel.UUID, error) {
	if ctx.Request().Header.Get(HeaderVolunteerID) != "" {
		id, err := headerUUID(ctx, HeaderVolunteerID)
		return message.SenderVolunteer, id, err
	}
	id, err := headerUUID(ctx, HeaderRecipientID)
	return message.SenderRecipient, id, err
}

func reviewDecisionFromString(s string) commands.ReviewDecision {
	switch s {
	case "approve":
		return commands.DecisionApprove
	case "reject":
		return commands.DecisionReject
	case "suspend":
		return commands.DecisionSuspend
	default:
		return commands.DecisionUnknown
	}
}
