package postgres

import (
	"fmt"
	"strings"

	"github.com/location-registry/internal/domain"
)

// sqlQuery - SQL с плейсхолдерами '?' (приводятся к драйверу через Rebind) и аргументы
type sqlQuery struct {
	SQL  string
	Args []interface{}
}

// conditions - набор условий WHERE, объединяемых через AND
type conditions struct {
	parts []string
	args  []interface{}
}

func (c *conditions) add(cond string, args ...interface{}) {
	c.parts = append(c.parts, cond)
	c.args = append(c.args, args...)
}

func (c *conditions) String() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// searchQueries строит запрос страницы и запрос общего количества
func searchQueries(t *table, q domain.Query) (page sqlQuery, count sqlQuery) {
	where := searchConditions(t, q)

	var distance string
	var distanceArgs []interface{}
	if q.Near != nil {
		distance = distanceExpr(t) + " / 1000.0"
		distanceArgs = []interface{}{q.Near.Lon, q.Near.Lat}
	}

	count = sqlQuery{
		SQL:  "SELECT COUNT(*) FROM " + t.from + where.String(),
		Args: where.args,
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(t.selectColumns(q.WithGeometry, distance))
	b.WriteString(" FROM ")
	b.WriteString(t.from)
	b.WriteString(where.String())
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy(t, q))
	b.WriteString(" LIMIT ? OFFSET ?")

	args := make([]interface{}, 0, len(distanceArgs)+len(where.args)+2)
	args = append(args, distanceArgs...)
	args = append(args, where.args...)
	args = append(args, q.Limit, q.Offset)

	return sqlQuery{SQL: b.String(), Args: args}, count
}

func searchConditions(t *table, q domain.Query) *conditions {
	c := &conditions{}

	if !q.IncludeInactive {
		c.add(t.col("is_active") + " = TRUE")
	}

	if q.SearchTerm != "" {
		pattern := "%" + escapeLike(q.SearchTerm) + "%"
		ors := make([]string, len(t.text))
		for i, col := range t.text {
			ors[i] = col + " ILIKE ?"
			c.args = append(c.args, pattern)
		}
		c.parts = append(c.parts, "("+strings.Join(ors, " OR ")+")")
	}

	if q.Population.Min != nil {
		c.add(t.col("population")+" >= ?", *q.Population.Min)
	}
	if q.Population.Max != nil {
		c.add(t.col("population")+" <= ?", *q.Population.Max)
	}
	if q.Area.Min != nil {
		c.add(t.col("area_sq_km")+" >= ?", *q.Area.Min)
	}
	if q.Area.Max != nil {
		c.add(t.col("area_sq_km")+" <= ?", *q.Area.Max)
	}

	if child, ok := tables[t.level.Child()]; ok && !q.Children.Empty() {
		active := fmt.Sprintf("(SELECT COUNT(*) FROM %s c WHERE c.%s = %s AND c.is_active = TRUE)",
			child.name, child.parentFK, t.col("id"))
		if q.Children.Min != nil {
			c.add(active+" >= ?", *q.Children.Min)
		}
		if q.Children.Max != nil {
			c.add(active+" <= ?", *q.Children.Max)
		}
	}

	if q.Type != nil && t.level == domain.LevelMunicipality {
		c.add(t.col("type")+" = ?", string(*q.Type))
	}

	// порядок уровней фиксирован, чтобы SQL был детерминированным
	for _, lv := range domain.Levels {
		code, ok := q.AncestorCodes[lv]
		if !ok || !lv.IsAncestorOf(t.level) {
			continue
		}
		c.add("upper("+aliases[lv]+".code) = ?", strings.ToUpper(code))
	}

	if q.Near != nil {
		c.add(distanceExpr(t)+" <= ?", q.Near.Lon, q.Near.Lat, q.Near.RadiusMeters())
	}

	return c
}

// distanceExpr - расстояние в метрах от точки уровня до точки запроса (аргументы: lon, lat)
func distanceExpr(t *table) string {
	return "ST_DistanceSphere(" + t.point + ", ST_SetSRID(ST_MakePoint(?, ?), 4326))"
}

func orderBy(t *table, q domain.Query) string {
	var col string
	switch q.Sort {
	case domain.SortName:
		col = t.sortName
	case domain.SortPopulation:
		col = t.col("population")
	case domain.SortArea:
		col = t.col("area_sq_km")
	case domain.SortCreatedAt:
		col = t.col("created_at")
	case domain.SortDistance:
		if q.Near != nil {
			col = "distance_km"
		}
	}
	if col == "" {
		col = t.code
		if t.level == domain.LevelWard {
			col = "w.ward_number"
		}
	}

	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	return col + " " + dir + " NULLS LAST, " + t.col("id") + " " + dir
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
