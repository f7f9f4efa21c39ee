package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
	"assessform-client/internal/entity"
	"assessform-client/internal/pkg/serverutils"
	"assessform-client/internal/repository/filestore"
)

type IResponseController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
}

type responseController struct {
	store *filestore.ResponseFileStore
}

func NewResponseController(store *filestore.ResponseFileStore) IResponseController {
	return &responseController{store: store}
}

func (c *responseController) RegisterRoutes(r fiber.Router) {
	r.Get("/responses", c.Get)
	r.Post("/responses", c.Save)
}

func (c *responseController) Get(ctx *fiber.Ctx) error {
	switch ctx.Query("action") {
	case "getEmployee":
		return c.getEmployee(ctx)
	case "getCompany":
		return c.getCompany(ctx)
	default:
		return c.getStatus(ctx)
	}
}

func (c *responseController) getStatus(ctx *fiber.Ctx) error {
	companyID := ctx.Query("companyId")
	if companyID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "companyId required")
	}

	res := dto.CompanyStatusResponse{EmployeeIDs: []int{}}

	if rec, found, err := c.store.LoadCompany(companyID); err != nil {
		return err
	} else if found {
		res.CompanyCompleted = rec.ExplicitlyCompleted
		res.CompanyInProgress = rec.InProgress
		res.CompletionPercentage = rec.CompletionPercentage
		if rec.LastModified != "" {
			lm := rec.LastModified
			res.LastModified = &lm
		}
	}

	ids, err := c.store.ListEmployeeIDs(companyID)
	if err != nil {
		return err
	}
	res.EmployeeIDs = ids
	res.EmployeeCount = len(ids)
	if len(ids) > 0 {
		res.NextEmployeeID = ids[len(ids)-1] + 1
	}

	return ctx.JSON(res)
}

func (c *responseController) getEmployee(ctx *fiber.Ctx) error {
	companyID := ctx.Query("companyId")
	rawID := ctx.Query("employeeId")
	if companyID == "" || rawID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "companyId and employeeId required")
	}
	employeeID, err := strconv.Atoi(rawID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "employeeId must be an integer")
	}

	rec, found, err := c.store.LoadEmployee(companyID, employeeID)
	if err != nil {
		return err
	}
	if !found {
		return ctx.JSON(dto.EmployeeLookupResponse{
			Found:   false,
			Message: "No employee found with ID " + rawID + " for company " + companyID,
		})
	}

	lm := rec.LastModified
	return ctx.JSON(dto.EmployeeLookupResponse{
		Found:        true,
		Responses:    rec.Responses,
		LastModified: &lm,
	})
}

func (c *responseController) getCompany(ctx *fiber.Ctx) error {
	companyID := ctx.Query("companyId")
	if companyID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "companyId required")
	}

	rec, found, err := c.store.LoadCompany(companyID)
	if err != nil {
		return err
	}
	if !found {
		return ctx.JSON(dto.CompanyLookupResponse{
			Found:   false,
			Message: "No company data found for company " + companyID,
		})
	}

	lm := rec.LastModified
	return ctx.JSON(dto.CompanyLookupResponse{
		Found:                true,
		Responses:            rec.Responses,
		CompletionPercentage: rec.CompletionPercentage,
		InProgress:           rec.InProgress,
		ExplicitlyCompleted:  rec.ExplicitlyCompleted,
		LastModified:         &lm,
	})
}

func (c *responseController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveResponseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if req.FormType == entity.FormTypeCompany {
		return c.saveCompany(ctx, &req)
	}
	return c.saveEmployee(ctx, &req)
}

func (c *responseController) saveCompany(ctx *fiber.Ctx, req *dto.SaveResponseRequest) error {
	now := time.Now().UTC().Format(time.RFC3339)

	existing, found, err := c.store.LoadCompany(req.CompanyID)
	if err != nil {
		return err
	}
	if found && existing.ExplicitlyCompleted {
		return apperror.New(apperror.KindAlreadyCompleted, "Company questionnaire already completed")
	}

	answered := 0
	for _, value := range req.Responses {
		if value != "" {
			answered++
		}
	}
	pct := 0
	if len(req.Responses) > 0 {
		pct = answered * 100 / len(req.Responses)
	}

	rec := &filestore.CompanyRecord{
		CompanyID:            req.CompanyID,
		FormType:             req.FormType,
		Timestamp:            now,
		LastModified:         now,
		Responses:            req.Responses,
		CompletionPercentage: pct,
		InProgress:           pct > 0 && pct < 100 && !req.ExplicitlyCompleted,
		ExplicitlyCompleted:  req.ExplicitlyCompleted,
	}
	if found {
		rec.Timestamp = existing.Timestamp
		rec.FileUploads = existing.FileUploads
	}
	c.attachFileMetadata(req, &rec.FileUploads, nil)

	if err := c.store.SaveCompany(rec); err != nil {
		return err
	}

	return ctx.JSON(dto.SaveResponseResult{
		Message:              "Company response saved successfully",
		Filename:             req.CompanyID + "/company.json",
		CompletionPercentage: pct,
		InProgress:           rec.InProgress,
		ExplicitlyCompleted:  rec.ExplicitlyCompleted,
	})
}

func (c *responseController) saveEmployee(ctx *fiber.Ctx, req *dto.SaveResponseRequest) error {
	now := time.Now().UTC().Format(time.RFC3339)

	employeeID := 0
	switch {
	case req.EmployeeID != nil:
		employeeID = *req.EmployeeID
	case req.IsNewEmployee:
		next, err := c.store.NextEmployeeID(req.CompanyID)
		if err != nil {
			return err
		}
		employeeID = next
	default:
		return fiber.NewError(fiber.StatusBadRequest, "employeeId or isNewEmployee required")
	}

	existing, found, err := c.store.LoadEmployee(req.CompanyID, employeeID)
	if err != nil {
		return err
	}

	rec := &filestore.EmployeeRecord{
		CompanyID:    req.CompanyID,
		EmployeeID:   employeeID,
		FormType:     req.FormType,
		Timestamp:    now,
		LastModified: now,
		Responses:    req.Responses,
	}
	if found {
		rec.Timestamp = existing.Timestamp
		rec.FileUploads = existing.FileUploads
	}
	c.attachFileMetadata(req, &rec.FileUploads, &employeeID)

	if err := c.store.SaveEmployee(rec); err != nil {
		return err
	}

	return ctx.JSON(dto.SaveResponseResult{
		Message:    "Employee response saved successfully",
		Filename:   req.CompanyID + "/employee_" + strconv.Itoa(employeeID) + ".json",
		EmployeeID: &employeeID,
	})
}

// attachFileMetadata merges the save's file metadata into the record and
// writes the registry entry, matching the original upload bookkeeping.
func (c *responseController) attachFileMetadata(req *dto.SaveResponseRequest, uploads *map[string]dto.FileMetadata, employeeID *int) {
	if req.FileMetadata == nil {
		return
	}
	if *uploads == nil {
		*uploads = make(map[string]dto.FileMetadata)
	}
	(*uploads)[req.FileMetadata.QuestionID] = *req.FileMetadata

	// Registry write failures are logged server-side by the caller's error
	// path; the save itself must not fail because bookkeeping did.
	_ = c.store.SaveUploadMetadata(&filestore.UploadMetadata{
		UploadID:        uuid.New().String(),
		CompanyID:       req.CompanyID,
		EmployeeID:      employeeID,
		QuestionID:      req.FileMetadata.QuestionID,
		FileName:        req.FileMetadata.FileName,
		FileSize:        req.FileMetadata.FileSize,
		FileType:        req.FileMetadata.FileType,
		StorageKey:      req.FileMetadata.StorageKey,
		UploadTimestamp: time.Now().UTC().Format(time.RFC3339),
		FormType:        req.FormType,
	})
}
