// Пакет loader — импорт данных реестра из XML-выгрузок Рособрнадзора.
//
// Выгрузка — это файл со свидетельствами об аккредитации (Certificate),
// внутри каждого — данные организации (ActualEducationOrganization)
// и приложения с аккредитованными программами. Организации идентифицируются
// по ОГРН: повторная загрузка обновляет карточку, а не дублирует её.
// Импорт одного файла выполняется в одной транзакции.
package loader

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/repository"
)

// certificateXML — свидетельство об аккредитации из выгрузки.
type certificateXML struct {
	Organization *organizationXML `xml:"ActualEducationOrganization"`
	Supplements  []supplementXML  `xml:"Supplements>Supplement"`
}

// organizationXML — данные организации внутри свидетельства.
type organizationXML struct {
	FullName   string `xml:"FullName"`
	ShortName  string `xml:"ShortName"`
	OGRN       string `xml:"OGRN"`
	INN        string `xml:"INN"`
	KPP        string `xml:"KPP"`
	Address    string `xml:"PostAddress"`
	Phone      string `xml:"Phone"`
	Email      string `xml:"Email"`
	Website    string `xml:"WebSite"`
	HeadName   string `xml:"HeadName"`
	RegionName string `xml:"RegionName"`
}

// supplementXML — приложение к свидетельству с программами.
type supplementXML struct {
	Programs []programXML `xml:"EducationalPrograms>EducationalProgram"`
}

// programXML — аккредитованная образовательная программа.
type programXML struct {
	Code  string `xml:"ProgrammCode"`
	Name  string `xml:"ProgrammName"`
	Level string `xml:"EduLevelName"`
}

// Stats — итоги импорта.
type Stats struct {
	// Certificates — обработано свидетельств.
	Certificates int
	// OrganizationsCreated/OrganizationsUpdated — новые и обновлённые карточки.
	OrganizationsCreated int
	OrganizationsUpdated int
	// ProgramsCreated — создано образовательных программ.
	ProgramsCreated int
	// Skipped — свидетельства без организации или без ОГРН.
	Skipped int
}

// Add прибавляет итоги другого файла.
func (s *Stats) Add(other Stats) {
	s.Certificates += other.Certificates
	s.OrganizationsCreated += other.OrganizationsCreated
	s.OrganizationsUpdated += other.OrganizationsUpdated
	s.ProgramsCreated += other.ProgramsCreated
	s.Skipped += other.Skipped
}

// Loader — импорт XML-выгрузок в базу реестра.
type Loader struct {
	tx     *repository.TxRunner
	logger *slog.Logger
}

// New создаёт загрузчик.
func New(tx *repository.TxRunner, logger *slog.Logger) *Loader {
	return &Loader{
		tx:     tx,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// LoadDir импортирует все *.xml файлы директории.
// Каждый файл — отдельная транзакция: ошибка одного файла
// не откатывает уже импортированные.
func (l *Loader) LoadDir(ctx context.Context, dir string) (Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return Stats{}, fmt.Errorf("поиск XML-файлов в %s: %w", dir, err)
	}
	if len(files) == 0 {
		return Stats{}, fmt.Errorf("в директории %s нет XML-файлов", dir)
	}

	var total Stats
	for _, file := range files {
		stats, err := l.LoadFile(ctx, file)
		if err != nil {
			l.logger.Error("Ошибка импорта файла, файл пропущен",
				slog.String("file", file),
				slog.String("error", err.Error()),
			)
			continue
		}
		total.Add(stats)
	}
	return total, nil
}

// LoadFile импортирует один XML-файл в одной транзакции.
func (l *Loader) LoadFile(ctx context.Context, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("открытие файла %s: %w", path, err)
	}
	defer f.Close()

	l.logger.Info("Импорт файла", slog.String("file", path))

	var stats Stats
	err = l.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		rp := repos{
			org:    repository.NewOrganizationRepository(tx),
			region: repository.NewRegionRepository(tx),
			spec:   repository.NewSpecialtyRepository(tx),
		}
		var txErr error
		stats, txErr = l.load(ctx, rp, f)
		return txErr
	})
	if err != nil {
		return Stats{}, err
	}

	l.logger.Info("Файл импортирован",
		slog.String("file", path),
		slog.Int("certificates", stats.Certificates),
		slog.Int("orgs_created", stats.OrganizationsCreated),
		slog.Int("orgs_updated", stats.OrganizationsUpdated),
		slog.Int("programs_created", stats.ProgramsCreated),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// repos — репозитории, связанные с транзакцией импорта.
type repos struct {
	org    repository.OrganizationRepository
	region repository.RegionRepository
	spec   repository.SpecialtyRepository
}

// load разбирает поток XML и сохраняет данные через tx-связанные репозитории.
// Свидетельства читаются потоково, без загрузки файла целиком в память.
func (l *Loader) load(ctx context.Context, rp repos, r io.Reader) (Stats, error) {
	// Кэши на время импорта: регионы по названию, организации по ОГРН.
	regions := map[string]int64{}
	seenOGRN := map[string]int64{}

	var stats Stats

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("разбор XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Certificate" {
			continue
		}

		var cert certificateXML
		if err := decoder.DecodeElement(&cert, &start); err != nil {
			return stats, fmt.Errorf("разбор свидетельства: %w", err)
		}
		stats.Certificates++

		if cert.Organization == nil {
			l.logger.Warn("Свидетельство без данных об организации пропущено")
			stats.Skipped++
			continue
		}

		ogrn := strings.TrimSpace(cert.Organization.OGRN)
		if ogrn == "" {
			l.logger.Warn("Организация без ОГРН пропущена",
				slog.String("full_name", cert.Organization.FullName),
			)
			stats.Skipped++
			continue
		}

		orgID, known := seenOGRN[ogrn]
		if !known {
			var err error
			var created bool
			orgID, created, err = l.upsertOrganization(ctx, rp, regions, cert.Organization, ogrn)
			if err != nil {
				return stats, err
			}
			seenOGRN[ogrn] = orgID
			if created {
				stats.OrganizationsCreated++
			} else {
				stats.OrganizationsUpdated++
			}
		}

		created, err := l.loadPrograms(ctx, rp.spec, orgID, cert.Supplements)
		if err != nil {
			return stats, err
		}
		stats.ProgramsCreated += created
	}

	return stats, nil
}

// upsertOrganization создаёт или обновляет карточку организации по ОГРН.
// Возвращает ID организации и признак создания новой записи.
func (l *Loader) upsertOrganization(
	ctx context.Context,
	rp repos,
	regions map[string]int64,
	data *organizationXML,
	ogrn string,
) (int64, bool, error) {
	regionID, err := l.resolveRegion(ctx, rp.region, regions, data.RegionName)
	if err != nil {
		return 0, false, err
	}

	org := &model.Organization{
		FullName: strings.TrimSpace(data.FullName),
		OGRN:     ogrn,
		RegionID: regionID,
	}
	org.ShortName = optional(data.ShortName)
	org.INN = optional(data.INN)
	org.KPP = optional(data.KPP)
	org.Address = optional(data.Address)
	org.Phone = optional(data.Phone)
	org.Email = optional(data.Email)
	org.Website = optional(data.Website)
	org.HeadName = optional(data.HeadName)

	existing, err := rp.org.GetByOGRN(ctx, ogrn)
	switch {
	case err == nil:
		org.ID = existing.ID
		if err := rp.org.Update(ctx, org); err != nil {
			return 0, false, fmt.Errorf("обновление организации ОГРН %s: %w", ogrn, err)
		}
		return org.ID, false, nil
	case errors.Is(err, repository.ErrNotFound):
		if err := rp.org.Create(ctx, org); err != nil {
			return 0, false, fmt.Errorf("создание организации ОГРН %s: %w", ogrn, err)
		}
		return org.ID, true, nil
	default:
		return 0, false, fmt.Errorf("поиск организации ОГРН %s: %w", ogrn, err)
	}
}

// resolveRegion возвращает ID региона по названию, создавая регион
// при отсутствии. Пустое название — организация без региона.
func (l *Loader) resolveRegion(
	ctx context.Context,
	regionRepo repository.RegionRepository,
	cache map[string]int64,
	name string,
) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	if id, ok := cache[name]; ok {
		return &id, nil
	}

	region, err := regionRepo.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		region = &model.Region{Name: name}
		if err := regionRepo.Create(ctx, region); err != nil {
			return nil, fmt.Errorf("создание региона %q: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("поиск региона %q: %w", name, err)
	}

	cache[name] = region.ID
	return &region.ID, nil
}

// loadPrograms создаёт программы организации из приложений свидетельства.
// УГС выводится из первых двух цифр кода специальности (09.03.01 → 09).
func (l *Loader) loadPrograms(
	ctx context.Context,
	specRepo repository.SpecialtyRepository,
	orgID int64,
	supplements []supplementXML,
) (int, error) {
	created := 0
	for _, supp := range supplements {
		for _, prog := range supp.Programs {
			code := strings.TrimSpace(prog.Code)
			name := strings.TrimSpace(prog.Name)
			if code == "" {
				continue
			}

			groupCode := code
			if i := strings.Index(code, "."); i > 0 {
				groupCode = code[:i]
			}

			// Название группы неизвестно из выгрузки: при первом появлении
			// сохраняем код, существующее название не перезаписывается.
			group, err := specRepo.GetOrCreateGroup(ctx, groupCode, groupCode)
			if err != nil {
				return created, fmt.Errorf("УГС %q: %w", groupCode, err)
			}

			specialty, err := specRepo.GetOrCreateSpecialty(ctx, code, name, group.ID)
			if err != nil {
				return created, fmt.Errorf("специальность %q: %w", code, err)
			}

			program := &model.EducationalProgram{
				OrganizationID: orgID,
				SpecialtyID:    specialty.ID,
				Level:          optional(prog.Level),
			}
			if err := specRepo.CreateProgram(ctx, program); err != nil {
				return created, fmt.Errorf("программа %q организации %d: %w", code, orgID, err)
			}
			created++
		}
	}
	return created, nil
}

// optional возвращает указатель на trimmed-значение, nil для пустого.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
