package model

// EducationalProgram — образовательная программа организации.
// Связывает организацию со специальностью; фильтры реестра по УГС
// и специальности идут через эту таблицу.
type EducationalProgram struct {
	ID             int64
	OrganizationID int64
	SpecialtyID    int64
	// Level — уровень образования (бакалавриат, магистратура и т.д.).
	Level *string
}
