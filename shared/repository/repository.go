package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"pms/infras/otel"
	"pms/infras/postgres"
	"pms/shared/constant"
	"pms/shared/dto"
	"pms/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errInvalidSortDir = errors.New("invalid sort direction")
)

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

// namedExecer and preparer are satisfied by both *sqlx.DB and *sqlx.Tx.
type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is a reflection driven read/insert helper over one table. Columns come from
// the `db` tag of T, joined columns carry a `table` tag (and `column` when aliased) and T
// may expose GetJoinQuery() for the join clause.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	selectAll     string
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	joinQuery := ""
	if method := reflect.ValueOf(zero).MethodByName("GetJoinQuery"); method.IsValid() {
		if out := method.Call(nil); len(out) > 0 {
			joinQuery = out[0].String()
		}
	}

	repo := Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinQuery,
		InsertColumns: insertColumns,
	}
	repo.selectAll = repo.selectList()

	return repo
}

func (repo *Repository[T]) newScope(ctx context.Context, method, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, method))

	scope.SetAttributes(map[string]any{
		constant.OtelQueryAttributeKey: query,
		"db.table":                     repo.table,
	})

	return ctx, scope
}

// fail logs and traces err and wraps it with what was being done.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.InsertColumns))
	for idx, col := range repo.InsertColumns {
		placeholders[idx] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) insert(ctx context.Context, method string, exec namedExecer, model T) error {
	query := repo.insertQuery()

	ctx, scope := repo.newScope(ctx, method, query)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, "Insert", repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, "InsertTx", sqltx, model)
}

// ExecTx runs a named write statement inside sqltx and returns the number of affected rows.
// Domain repositories use it for conditional updates the generic helpers cannot express.
func (repo *Repository[T]) ExecTx(ctx context.Context, sqltx *sqlx.Tx, method, query string, arg any) (int64, error) {
	ctx, scope := repo.newScope(ctx, method, query)
	defer scope.End()

	result, err := sqltx.NamedExecContext(ctx, query, arg)
	if err != nil {
		return 0, repo.fail(scope, "execute "+method, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows of "+method, err)
	}

	scope.SetAttribute("db.rows_affected", affected)

	return affected, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	ctx, scope := repo.newScope(ctx, "Exist", query)
	defer scope.End()

	exist := false
	if err := repo.getOne(ctx, repo.db.Read, query, &exist, args); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// getOne prepares query on prep and scans the single result row into dest.
func (repo *Repository[T]) getOne(ctx context.Context, prep preparer, query string, dest any, args map[string]any) error {
	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func (repo *Repository[T]) get(ctx context.Context, method string, prep preparer, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectColumns(columns...), repo.table, repo.join, where)

	ctx, scope := repo.newScope(ctx, method, query)
	defer scope.End()

	err := repo.getOne(ctx, prep, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// Get returns the zero value of T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "Get", repo.db.Read, filter, columns...)
}

func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, "GetTx", sqltx, filter, columns...)
}

// SelectQuery renders the SELECT for params and filter. With lock the matching rows of the
// main table are locked FOR UPDATE; OF keeps postgres from rejecting the nullable side of
// an outer join.
func (repo *Repository[T]) SelectQuery(params dto.QueryParams, filter dto.FilterGroup, lock bool, columns ...string) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(filter)

	clauses := []string{
		"SELECT " + repo.selectColumns(columns...),
		"FROM " + repo.table,
		repo.join,
		where,
	}

	if params.SortBy != "" {
		dir := strings.ToUpper(params.SortDir)
		if dir == "" {
			dir = dto.SortDirAsc
		}

		if dir != dto.SortDirAsc && dir != dto.SortDirDesc {
			return "", nil, fmt.Errorf("%w: %s", errInvalidSortDir, params.SortDir)
		}

		clauses = append(clauses, fmt.Sprintf("ORDER BY %s %s", params.SortBy, dir))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		clauses = append(clauses, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			clauses = append(clauses, "OFFSET :offset")
		}
	}

	if lock {
		clauses = append(clauses, "FOR UPDATE OF "+repo.table)
	}

	clauses = slices.DeleteFunc(clauses, func(clause string) bool { return strings.TrimSpace(clause) == "" })

	return strings.Join(clauses, " "), args, nil
}

func (repo *Repository[T]) getAll(ctx context.Context, method string, prep preparer, params dto.QueryParams, filter dto.FilterGroup, lock bool, columns ...string) ([]T, error) {
	query, args, err := repo.SelectQuery(params, filter, lock, columns...)

	ctx, scope := repo.newScope(ctx, method, query)
	defer scope.End()

	if err != nil {
		return nil, repo.fail(scope, "build query", err)
	}

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	var models []T
	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	scope.SetAttribute("db.rows", len(models))

	return models, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, "GetAll", repo.db.Read, params, filter, false, columns...)
}

// GetAllForUpdateTx reads and row-locks the matching rows until sqltx ends.
func (repo *Repository[T]) GetAllForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, "GetAllForUpdateTx", sqltx, params, filter, true, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	ctx, scope := repo.newScope(ctx, "Count", query)
	defer scope.End()

	var count int
	if err := repo.getOne(ctx, repo.db.Read, query, &count, args); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) selectList(only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (repo *Repository[T]) selectColumns(only ...string) string {
	if len(only) == 0 && repo.selectAll != "" {
		return repo.selectAll
	}

	return repo.selectList(only...)
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		tableField := field.Tag.Get("table")
		if tableField == "" {
			tableField = table
		}

		if tableField == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if colTag := field.Tag.Get("column"); colTag != "" {
			columns = append(columns, column{name: colTag, table: tableField, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: tableField})
		}
	}

	return columns, insertColumns
}
