package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// Scanner maps columns onto struct fields by name (snake_case or a db tag).
// Fields tagged `scan:"skip"` are left untouched.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanRowToStruct advances rows once and scans the row into dest.
func (s *Scanner) ScanRowToStruct(rows *sql.Rows, dest interface{}) error {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}

		return sql.ErrNoRows
	}

	return s.scanCurrent(rows, dest)
}

func (s *Scanner) ScanRowsToSlice(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to slice")
	}

	sliceValue := destValue.Elem()
	elemType := sliceValue.Type().Elem()

	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("slice elements must be structs")
	}

	for rows.Next() {
		elemValue := reflect.New(elemType)

		if err := s.scanCurrent(rows, elemValue.Interface()); err != nil {
			return err
		}

		sliceValue.Set(reflect.Append(sliceValue, elemValue.Elem()))
	}

	return rows.Err()
}

func (s *Scanner) scanCurrent(rows *sql.Rows, dest interface{}) error {
	destValue := reflect.ValueOf(dest)

	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct")
	}

	destElem := destValue.Elem()
	destType := destElem.Type()

	columns, err := rows.Columns()

	if err != nil {
		return err
	}

	scanArgs := make([]interface{}, len(columns))

	for i := range scanArgs {
		scanArgs[i] = new(interface{})
	}

	if err := rows.Scan(scanArgs...); err != nil {
		return err
	}

	for i, colName := range columns {
		val := *(scanArgs[i].(*interface{}))

		field, ok := s.findStructField(destType, colName)

		if !ok || field.Tag.Get("scan") == "skip" {
			continue
		}

		if err := s.setFieldValue(destElem.FieldByIndex(field.Index), val); err != nil {
			slog.Warn("Failed to set field", "field", field.Name, "error", err)
		}
	}

	return nil
}

func (s *Scanner) findStructField(structType reflect.Type, colName string) (reflect.StructField, bool) {
	colNameLower := strings.ToLower(colName)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && strings.ToLower(tag) == colNameLower {
			return field, true
		}
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if strings.ToLower(field.Name) == colNameLower {
			return field, true
		}
	}

	if field, found := structType.FieldByName(s.snakeToCamel(colName)); found {
		return field, true
	}

	return reflect.StructField{}, false
}

func (s *Scanner) snakeToCamel(snake string) string {
	parts := strings.Split(snake, "_")

	for i := range parts {
		if parts[i] == "id" || parts[i] == "uuid" {
			parts[i] = strings.ToUpper(parts[i])
			continue
		}

		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + strings.ToLower(parts[i][1:])
		}
	}

	return strings.Join(parts, "")
}

// camelToSnake is the inverse of snakeToCamel, used to build column lists from structs.
func (s *Scanner) camelToSnake(camel string) string {
	var result []rune

	for i, r := range camel {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(rune(camel[i-1])) {
			result = append(result, '_')
		}

		result = append(result, unicode.ToLower(r))
	}

	return string(result)
}

// Columns lists the column names dest's exported fields map to.
func (s *Scanner) Columns(dest interface{}) []string {
	destType := reflect.TypeOf(dest)

	if destType.Kind() == reflect.Ptr {
		destType = destType.Elem()
	}

	columns := make([]string, 0, destType.NumField())

	for i := 0; i < destType.NumField(); i++ {
		field := destType.Field(i)

		if !field.IsExported() || field.Tag.Get("scan") == "skip" {
			continue
		}

		if tag := field.Tag.Get("db"); tag != "" {
			columns = append(columns, tag)
			continue
		}

		columns = append(columns, s.camelToSnake(field.Name))
	}

	return columns
}

func (s *Scanner) setFieldValue(field reflect.Value, val interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if val == nil {
		field.SetZero()
		return nil
	}

	if b, ok := val.([]byte); ok {
		val = string(b)
	}

	fieldType := field.Type()

	// Nullable columns map onto pointer fields.
	if fieldType.Kind() == reflect.Ptr {
		target := reflect.New(fieldType.Elem())

		if err := s.setFieldValue(target.Elem(), val); err != nil {
			return err
		}

		field.Set(target)
		return nil
	}

	valValue := reflect.ValueOf(val)

	if valValue.Type().AssignableTo(fieldType) {
		field.Set(valValue)
		return nil
	}

	switch fieldType {
	case uuidType:
		str, ok := val.(string)

		if !ok {
			return fmt.Errorf("cannot convert %T to uuid", val)
		}

		parsed, err := uuid.Parse(str)

		if err != nil {
			return err
		}

		field.Set(reflect.ValueOf(parsed))
		return nil
	case timeType:
		str, ok := val.(string)

		if !ok {
			return fmt.Errorf("cannot convert %T to time", val)
		}

		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, str); err == nil {
				field.Set(reflect.ValueOf(parsed))
				return nil
			}
		}

		return fmt.Errorf("cannot parse time %q", str)
	}

	switch fieldType.Kind() {
	case reflect.String:
		if str, ok := val.(string); ok {
			field.SetString(str)
		}
	case reflect.Int, reflect.Int64, reflect.Int32:
		if v, ok := val.(int64); ok {
			field.SetInt(v)
		}
	case reflect.Bool:
		switch v := val.(type) {
		case bool:
			field.SetBool(v)
		case int64:
			field.SetBool(v != 0)
		}
	case reflect.Float64, reflect.Float32:
		if f, ok := val.(float64); ok {
			field.SetFloat(f)
		}
	default:
		return fmt.Errorf("unsupported field type %s", fieldType)
	}

	return nil
}
