package controller

import (
	"breathcoach-be/internal/dto"
	"breathcoach-be/internal/pkg/serverutils"
	"breathcoach-be/internal/service"
	"breathcoach-be/pkg/audiocache"

	"github.com/gofiber/fiber/v2"
)

type ICoachController interface {
	RegisterRoutes(r fiber.Router)
	Checkin(ctx *fiber.Ctx) error
	Audio(ctx *fiber.Ctx) error
	EndWorkout(ctx *fiber.Ctx) error
}

type coachController struct {
	coachingService service.ICoachingService
	audioCache      *audiocache.Cache
}

func NewCoachController(coachingService service.ICoachingService, audioCache *audiocache.Cache) ICoachController {
	return &coachController{
		coachingService: coachingService,
		audioCache:      audioCache,
	}
}

func (c *coachController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coach/v1")
	h.Post("checkin", c.Checkin)
	h.Get("audio/:ref", c.Audio)
	h.Post("end", c.EndWorkout)
}

func (c *coachController) Checkin(ctx *fiber.Ctx) error {
	var req dto.CheckinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.coachingService.Checkin(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check-in", res))
}

// Audio turns an audio reference from a decision bundle into playable
// bytes.
func (c *coachController) Audio(ctx *fiber.Ctx) error {
	ref := ctx.Params("ref")

	data, err := c.audioCache.Get(ctx.Context(), ref)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusNotFound, "audio artifact not found")
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	return ctx.Send(data)
}

func (c *coachController) EndWorkout(ctx *fiber.Ctx) error {
	var req dto.EndWorkoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.coachingService.EndWorkout(ctx.Context(), req.SessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end workout", nil))
}
