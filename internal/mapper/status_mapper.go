package mapper

import (
	"sort"
	"time"

	"assessform-client/internal/dto"
	"assessform-client/internal/entity"
)

func ToCompanyStatus(companyID string, res *dto.CompanyStatusResponse) *entity.CompanyStatus {
	status := &entity.CompanyStatus{
		CompanyID:            companyID,
		CompanyCompleted:     res.CompanyCompleted,
		CompanyInProgress:    res.CompanyInProgress,
		CompletionPercentage: res.CompletionPercentage,
		EmployeeCount:        res.EmployeeCount,
		EmployeeIDs:          append([]int(nil), res.EmployeeIDs...),
		NextEmployeeID:       res.NextEmployeeID,
	}
	if res.LastModified != nil {
		if ts, err := time.Parse(time.RFC3339, *res.LastModified); err == nil {
			status.LastModified = &ts
		}
	}
	return status
}

func ToQuestions(defs []dto.QuestionDefinition) []entity.Question {
	questions := make([]entity.Question, 0, len(defs))
	for _, def := range defs {
		questions = append(questions, entity.Question{
			QuestionID:          def.QuestionID,
			Question:            def.Question,
			QuestionType:        def.QuestionType,
			QuestionTypeDetails: def.QuestionTypeDetails,
			Required:            def.Required,
			Section:             def.Section,
			QuestionOrder:       def.QuestionOrder,
			AllowFileUpload:     def.AllowFileUpload,
			HelpText:            def.HelpText,
		})
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].QuestionOrder < questions[j].QuestionOrder
	})
	return questions
}
