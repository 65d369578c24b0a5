package model

// SpecialtyGroup — укрупнённая группа специальностей (УГС).
type SpecialtyGroup struct {
	ID int64
	// Code — код группы (уникальный, например "09").
	Code string
	// Name — название группы.
	Name string
}

// Specialty — специальность/направление подготовки.
type Specialty struct {
	ID int64
	// Code — код специальности (уникальный, например "09.03.01").
	Code string
	// Name — название специальности.
	Name string
	// GroupID — ссылка на укрупнённую группу.
	GroupID int64
}
