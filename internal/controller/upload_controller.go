package controller

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"assessform-client/internal/dto"
	"assessform-client/internal/pkg/serverutils"
	"assessform-client/internal/repository/filestore"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Presign(ctx *fiber.Ctx) error
	Put(ctx *fiber.Ctx) error
	Legacy(ctx *fiber.Ctx) error
}

type uploadController struct {
	store *filestore.ResponseFileStore
}

func NewUploadController(store *filestore.ResponseFileStore) IUploadController {
	return &uploadController{store: store}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	r.Post("/uploads/presign", c.Presign)
	r.Put("/uploads/put", c.Put)
	r.Post("/uploads/legacy", c.Legacy)
}

// Presign hands out a short-lived scoped target for a direct byte transfer.
func (c *uploadController) Presign(ctx *fiber.Ctx) error {
	var req dto.PresignUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	key := fmt.Sprintf("uploads/%s/%s/upload-%s-%s", req.CompanyID, req.QuestionID, uuid.New().String(), req.FileName)
	uploadURL := ctx.BaseURL() + "/uploads/put?key=" + url.QueryEscape(key)

	return ctx.JSON(dto.PresignUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: key,
		ExpiresIn:  300,
	})
}

func (c *uploadController) Put(ctx *fiber.Ctx) error {
	key := ctx.Query("key")
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "key required")
	}
	if err := c.store.WriteObject(key, ctx.Body()); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// Legacy accepts inline binary transport and performs the storage write
// server-side.
func (c *uploadController) Legacy(ctx *fiber.Ctx) error {
	companyID := ctx.Query("companyId")
	questionID := ctx.Query("questionId")
	fileName := ctx.Query("fileName")
	if companyID == "" || questionID == "" || fileName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "companyId, questionId and fileName required")
	}

	body := ctx.Body()
	key := fmt.Sprintf("uploads/%s/%s/upload-%s-%s", companyID, questionID, uuid.New().String(), fileName)
	if err := c.store.WriteObject(key, body); err != nil {
		return err
	}

	return ctx.JSON(dto.LegacyUploadResponse{
		Message:  "File uploaded successfully",
		FileName: fileName,
		FileSize: int64(len(body)),
		FilePath: key,
	})
}
