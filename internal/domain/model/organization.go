// Пакет model — доменные модели реестра аккредитованных
// образовательных организаций.
package model

import "time"

// Organization — аккредитованная образовательная организация.
type Organization struct {
	// ID — суррогатный ключ.
	ID int64
	// FullName — полное наименование организации.
	FullName string
	// ShortName — краткое наименование (опционально).
	ShortName *string
	// OGRN — основной государственный регистрационный номер (уникальный).
	OGRN string
	// INN — идентификационный номер налогоплательщика.
	INN *string
	// KPP — код причины постановки на учёт.
	KPP *string
	// Address — почтовый адрес.
	Address *string
	// Phone — контактный телефон.
	Phone *string
	// Email — контактный email.
	Email *string
	// Website — сайт организации.
	Website *string
	// HeadName — ФИО руководителя.
	HeadName *string
	// RegionID — ссылка на регион (NULL, если регион не определён).
	RegionID *int64
	// RegionName — название региона (заполняется из JOIN, не хранится в таблице).
	RegionName *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
