package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedFormat 表示数据文件的扩展名无法识别。
var ErrUnsupportedFormat = errors.New("不支持的数据文件格式")

// Table 是一张没有表头的数据表：每一行都是一条记录，单元格均为字符串。
type Table struct {
	Source  string
	Sheet   string
	Rows    [][]string
	Columns int
}

// Options 控制数据读取。
type Options struct {
	// Sheet 为 xlsx 工作表名，空字符串表示第一个工作表。
	Sheet string
	// Comma 为 csv 分隔符，0 表示逗号。
	Comma rune
}

// Len 返回记录数。
func (t *Table) Len() int { return len(t.Rows) }

// Load 按扩展名读取 .xlsx 或 .csv 文件。
func Load(path string, opts Options) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var read func(io.Reader) (*Table, error)
	switch ext {
	case ".xlsx", ".xlsm":
		read = func(r io.Reader) (*Table, error) { return ReadXLSX(r, opts.Sheet) }
	case ".csv", ".txt":
		read = func(r io.Reader) (*Table, error) { return ReadCSV(r, opts.Comma) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开数据文件 %s: %w", path, err)
	}
	defer file.Close()

	t, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件 %s 失败: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// ReadXLSX 读取工作表的全部行。
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 xlsx 失败: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("xlsx 中没有工作表")
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	t := normalize(rows)
	t.Sheet = sheet
	return t, nil
}

// ReadCSV 读取 csv，允许各行列数不同。
func ReadCSV(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	if comma != 0 {
		reader.Comma = comma
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 csv 失败: %w", err)
	}
	return normalize(rows), nil
}

// normalize 将单元格统一为 NFC，并把每一行补齐到最大列数。
func normalize(rows [][]string) *Table {
	columns := 0
	for _, row := range rows {
		columns = max(columns, len(row))
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, columns)
		for j, v := range row {
			cells[j] = norm.NFC.String(v)
		}
		out[i] = cells
	}
	return &Table{Rows: out, Columns: columns}
}
