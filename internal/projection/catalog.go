package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/location-registry/internal/domain"
)

// Resolver вычисляет значение поля; nil означает "нет данных"
type Resolver[E domain.Entity] func(ctx context.Context, src *Source[E]) (any, error)

// Definition - поле каталога
type Definition[E domain.Entity] struct {
	Field   Field
	Kind    Kind
	Default bool
	Resolve Resolver[E]
}

// Include - флаги, добавляющие дорогие поля к выбору
type Include struct {
	Geometry bool
	Totals   bool
	Children bool
	Distance bool
}

// Catalog - закрытый набор полей одного уровня
type Catalog[E domain.Entity] struct {
	level domain.Level
	defs  map[Field]Definition[E]
	order []Field
}

// NewCatalog создаёт каталог; повторное объявление поля - ошибка программиста
func NewCatalog[E domain.Entity](level domain.Level, defs ...Definition[E]) *Catalog[E] {
	c := &Catalog[E]{
		level: level,
		defs:  make(map[Field]Definition[E], len(defs)),
		order: make([]Field, 0, len(defs)),
	}
	for _, d := range defs {
		if _, dup := c.defs[d.Field]; dup {
			panic(fmt.Sprintf("projection: field %s declared twice for %s", d.Field, level))
		}
		c.defs[d.Field] = d
		c.order = append(c.order, d.Field)
	}
	return c
}

func (c *Catalog[E]) Level() domain.Level {
	return c.level
}

// Fields возвращает все поля каталога в порядке объявления
func (c *Catalog[E]) Fields() []Field {
	out := make([]Field, len(c.order))
	copy(out, c.order)
	return out
}

// Defaults - набор полей по умолчанию (без геометрии и агрегатов)
func (c *Catalog[E]) Defaults() FieldSet {
	return c.filter(func(d Definition[E]) bool { return d.Default })
}

// Scalars - все недорогие поля; используется для ответов на create/update
func (c *Catalog[E]) Scalars() FieldSet {
	return c.filter(func(d Definition[E]) bool { return d.Kind == KindScalar })
}

func (c *Catalog[E]) filter(keep func(Definition[E]) bool) FieldSet {
	fs := NewFieldSet()
	for _, f := range c.order {
		if keep(c.defs[f]) {
			fs.add(f)
		}
	}
	return fs
}

// Select разбирает запрошенные идентификаторы. Пустой список - набор по умолчанию.
// Флаги inc добавляют все поля соответствующего класса.
func (c *Catalog[E]) Select(names []string, inc Include) (FieldSet, error) {
	var fs FieldSet
	if len(names) == 0 {
		fs = c.Defaults()
	} else {
		fs = NewFieldSet()
		for _, raw := range names {
			f := ParseField(raw)
			if f == "" {
				continue
			}
			if _, ok := c.defs[f]; !ok {
				return FieldSet{}, &UnknownFieldError{Level: c.level, Field: raw}
			}
			fs.add(f)
		}
		if fs.Len() == 0 {
			fs = c.Defaults()
		}
	}

	for _, f := range c.order {
		switch c.defs[f].Kind {
		case KindGeometry:
			if inc.Geometry {
				fs.add(f)
			}
		case KindAggregate:
			if inc.Totals {
				fs.add(f)
			}
		case KindChildren:
			if inc.Children {
				fs.add(f)
			}
		case KindDistance:
			if inc.Distance {
				fs.add(f)
			}
		}
	}
	return fs, nil
}

// NeedsGeometry - требуется ли загрузка геометрии из хранилища
func (c *Catalog[E]) NeedsGeometry(fs FieldSet) bool {
	for _, f := range fs.fields {
		if c.defs[f].Kind == KindGeometry {
			return true
		}
	}
	return false
}

// Project строит проекцию: вызываются только резолверы выбранных полей
func (c *Catalog[E]) Project(ctx context.Context, src *Source[E], fs FieldSet) (*Projection, error) {
	p := &Projection{
		fields: fs.Fields(),
		values: make(map[Field]any, fs.Len()),
	}
	for _, f := range p.fields {
		def, ok := c.defs[f]
		if !ok {
			return nil, &UnknownFieldError{Level: c.level, Field: string(f)}
		}
		v, err := def.Resolve(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		p.values[f] = v
	}
	return p, nil
}

// Projection - ответ, содержащий только выбранные поля
type Projection struct {
	fields []Field
	values map[Field]any
}

// Value возвращает значение поля; nil для невыбранного поля или отсутствующих данных
func (p *Projection) Value(f Field) any {
	return p.values[f]
}

// Has - поле входит в выбранный набор
func (p *Projection) Has(f Field) bool {
	_, ok := p.values[f]
	return ok
}

func (p *Projection) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// MarshalJSON выводит ровно выбранные поля; отсутствующие данные - null
func (p *Projection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.fields))
	for _, f := range p.fields {
		out[f.JSONName()] = p.values[f]
	}
	return json.Marshal(out)
}
