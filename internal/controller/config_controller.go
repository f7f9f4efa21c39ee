package controller

import (
	"github.com/gofiber/fiber/v2"

	"assessform-client/internal/dto"
	"assessform-client/internal/entity"
)

type IConfigController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
}

type configController struct {
	catalogs map[string][]dto.QuestionDefinition
}

func NewConfigController() IConfigController {
	return &configController{
		catalogs: map[string][]dto.QuestionDefinition{
			entity.FormTypeCompany:  companyCatalog,
			entity.FormTypeEmployee: employeeCatalog,
		},
	}
}

func (c *configController) RegisterRoutes(r fiber.Router) {
	r.Get("/config/:formType", c.Get)
}

func (c *configController) Get(ctx *fiber.Ctx) error {
	formType := ctx.Params("formType")
	catalog, ok := c.catalogs[formType]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown form type: "+formType)
	}
	return ctx.JSON(catalog)
}

var companyCatalog = []dto.QuestionDefinition{
	{QuestionID: "c1", Question: "Company name", QuestionType: "text", Required: true, Section: "General", QuestionOrder: 1},
	{QuestionID: "c2", Question: "Number of employees", QuestionType: "number", Required: true, Section: "General", QuestionOrder: 2},
	{QuestionID: "c3", Question: "Industry sector", QuestionType: "select", QuestionTypeDetails: "manufacturing;services;retail;other", Required: true, Section: "General", QuestionOrder: 3},
	{QuestionID: "c4", Question: "Does the company have a written workplace policy?", QuestionType: "yesno", Required: true, Section: "Policies", QuestionOrder: 4},
	{QuestionID: "c5", Question: "Attach the current policy document", QuestionType: "file", Section: "Policies", QuestionOrder: 5, AllowFileUpload: true, HelpText: "PDF or Word, 10MB max"},
}

var employeeCatalog = []dto.QuestionDefinition{
	{QuestionID: "e1", Question: "Job title", QuestionType: "text", Required: true, Section: "Role", QuestionOrder: 1},
	{QuestionID: "e2", Question: "Years at the company", QuestionType: "number", Required: true, Section: "Role", QuestionOrder: 2},
	{QuestionID: "e3", Question: "Have you completed the annual training?", QuestionType: "yesno", Required: true, Section: "Training", QuestionOrder: 3},
	{QuestionID: "e4", Question: "Upload your training certificate", QuestionType: "file", Section: "Training", QuestionOrder: 4, AllowFileUpload: true, HelpText: "PDF or image, 10MB max"},
	{QuestionID: "e5", Question: "Additional comments", QuestionType: "textarea", Section: "Feedback", QuestionOrder: 5},
}
