// Package messages локализует тексты CLI через go-i18n; каталоги en и ru
// встроены в бинарник как yaml-файлы.
package messages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/employee-directory/internal/domain"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var locales embed.FS

// Идентификаторы сообщений
const (
	Title = "meta.title"

	ErrValidation       = "errors.validation"
	ErrConstraint       = "errors.constraint"
	ErrNotFound         = "errors.not_found"
	ErrPositionNotFound = "errors.position_not_found"
	ErrStore            = "errors.store"

	EmptyTable     = "results.empty_table"
	EmptyHierarchy = "results.empty_hierarchy"
	Created        = "results.created"
	Updated        = "results.updated"
	Deleted        = "results.deleted"
	Seeded         = "results.seeded"
	Reset          = "results.reset"
	Migrated       = "results.migrated"

	EmployeesTitle = "tables.employees_title"
	EmployeeTitle  = "tables.employee_title"
	PositionsTitle = "tables.positions_title"
)

var (
	employeeColumns = []string{
		"tables.employee_columns.col_id",
		"tables.employee_columns.full_name",
		"tables.employee_columns.position",
		"tables.employee_columns.hire_date",
		"tables.employee_columns.salary",
		"tables.employee_columns.manager",
	}
	positionColumns = []string{
		"tables.position_columns.col_id",
		"tables.position_columns.name",
		"tables.position_columns.level",
	}
)

var loadBundle = sync.OnceValues(newBundle)

func newBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.yml")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		data, err := locales.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
	}
	return bundle, nil
}

// Catalog выдаёт тексты на одном языке; отсутствующие сообщения берутся из en
type Catalog struct {
	localizer *i18n.Localizer
}

// Load создаёт каталог для языка; неизвестный язык - ошибка
func Load(lang string) (*Catalog, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	supported := false
	for _, t := range bundle.LanguageTags() {
		if t == tag {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("messages for language %q not found", lang)
	}

	return &Catalog{localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String())}, nil
}

// T возвращает сообщение id с подставленными data; неизвестный id возвращается как есть
func (c *Catalog) T(id string, data map[string]any) string {
	text, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return text
}

// EmployeeHeaders - заголовки колонок таблицы сотрудников
func (c *Catalog) EmployeeHeaders() []string {
	return c.all(employeeColumns)
}

// PositionHeaders - заголовки колонок таблицы должностей
func (c *Catalog) PositionHeaders() []string {
	return c.all(positionColumns)
}

func (c *Catalog) all(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.T(id, nil))
	}
	return out
}

// Error переводит ошибку сервиса в текст, различая её вид
func (c *Catalog) Error(err error) string {
	var ve *domain.ValidationError
	var cv *domain.ConstraintViolation

	switch {
	case errors.As(err, &ve):
		return c.T(ErrValidation, map[string]any{"detail": ve.Error()})
	case errors.As(err, &cv):
		return c.T(ErrConstraint, map[string]any{"rule": cv.Rule, "detail": cv.Message})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return c.T(ErrNotFound, nil)
	case errors.Is(err, domain.ErrPositionNotFound):
		return c.T(ErrPositionNotFound, nil)
	default:
		return c.T(ErrStore, map[string]any{"detail": err.Error()})
	}
}
