package repository_test

import (
	"testing"

	"pms/infras/otel/mocks"
	"pms/shared/dto"
	"pms/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type audited struct {
	CreatedBy string `db:"created_by"`
}

type stay struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number" table:"rooms"`
	RoomType   string `db:"type_name"   table:"rooms" column:"room_type"`
	Status     string `db:"status"`
	Ignored    string `db:"-"`
	audited
}

func (stay) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = stays.room_id"
}

func newRepo() repository.Repository[stay] {
	return repository.NewRepository[stay]("stay", "stays", "id", nil, mocks.NewOtel())
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo := newRepo()

	assert.Equal(t, []string{"id", "status", "created_by"}, repo.InsertColumns)
}

func TestRepository_SelectQuery(t *testing.T) {
	repo := newRepo()
	columns := "stays.id, rooms.room_number, rooms.room_type AS type_name, stays.status, stays.created_by"

	t.Run("no filter", func(t *testing.T) {
		query, args, err := repo.SelectQuery(dto.QueryParams{}, dto.FilterGroup{}, false)

		require.NoError(t, err)
		assert.Equal(t, "SELECT "+columns+" FROM stays LEFT JOIN rooms ON rooms.id = stays.room_id", query)
		assert.Empty(t, args)
	})

	t.Run("filtered, sorted, paginated and locked", func(t *testing.T) {
		filter := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "status", Value: "checked_in", Operator: dto.FilterOperatorEq, Table: "stays"},
			},
		}

		query, args, err := repo.SelectQuery(dto.QueryParams{Page: 3, Limit: 20, SortBy: "stays.id", SortDir: "desc"}, filter, true)

		require.NoError(t, err)
		assert.Equal(t, "SELECT "+columns+" FROM stays LEFT JOIN rooms ON rooms.id = stays.room_id "+
			"WHERE (stays.status = :status) ORDER BY stays.id DESC LIMIT :limit OFFSET :offset FOR UPDATE OF stays", query)
		assert.Equal(t, map[string]any{"status": "checked_in", "limit": 20, "offset": 40}, args)
	})

	t.Run("selected columns", func(t *testing.T) {
		query, _, err := repo.SelectQuery(dto.QueryParams{}, dto.FilterGroup{}, false, "id", "status")

		require.NoError(t, err)
		assert.Equal(t, "SELECT stays.id, stays.status FROM stays LEFT JOIN rooms ON rooms.id = stays.room_id", query)
	})

	t.Run("sort direction defaults to ascending", func(t *testing.T) {
		query, _, err := repo.SelectQuery(dto.QueryParams{SortBy: "stays.id"}, dto.FilterGroup{}, false, "id")

		require.NoError(t, err)
		assert.Contains(t, query, "ORDER BY stays.id ASC")
	})

	t.Run("invalid sort direction", func(t *testing.T) {
		_, _, err := repo.SelectQuery(dto.QueryParams{SortBy: "stays.id", SortDir: "; DROP TABLE stays"}, dto.FilterGroup{}, false)

		assert.Error(t, err)
	})
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := newRepo()

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "status", Operator: dto.FilterIsNull},
	}})
	assert.Equal(t, "WHERE (status IS NULL)", where)
	assert.Empty(t, args)
}
