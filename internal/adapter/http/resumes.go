package http

import (
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("invalid id")
	}
	return id, nil
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var in usecase.CreateResumeInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	r, err := h.resumes.Create(c.UserContext(), currentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	list, err := h.resumes.List(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	r, err := h.resumes.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var patch domain.ResumePatch
	if err := c.BodyParser(&patch); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	if patch.Empty() {
		return apperr.BadRequest("nothing to update")
	}
	r, err := h.resumes.Update(c.UserContext(), currentUser(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.resumes.Delete(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type duplicateReq struct {
	Title string `json:"title"`
}

func (h *Handler) DuplicateResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req duplicateReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperr.BadRequest("invalid payload")
		}
	}
	r, err := h.resumes.Duplicate(c.UserContext(), currentUser(c), id, req.Title)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *Handler) ShareResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	url, err := h.resumes.Share(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"shareUrl": url})
}

func (h *Handler) SearchPublic(c *fiber.Ctx) error {
	list, err := h.resumes.SearchPublic(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) GetPublic(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	r, err := h.resumes.GetPublic(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(r)
}
