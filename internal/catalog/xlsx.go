package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxHeader is the expected first row of every category sheet.
var xlsxHeader = []string{"topic", "degree", "kind", "prompt", "answers", "choices"}

// listSeparator splits multi-value cells (answers, choices).
const listSeparator = "|"

// LoadXLSX imports a spreadsheet catalog. Each sheet is one category named
// after the sheet; each data row is one question. Rows of the same topic are
// grouped in first-seen order.
func LoadXLSX(path string) (*Memory, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	m := NewMemory()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		topics, err := parseSheet(Category(sheet), rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		for _, t := range topics {
			m.add(t)
		}
	}
	return m, nil
}

func parseSheet(category Category, rows [][]string) ([]Topic, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	var order []string
	byName := make(map[string]*Topic)
	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}
		topicName := cell(row, 0)
		if topicName == "" {
			return nil, fmt.Errorf("row %d: topic is empty", line)
		}
		degree, err := strconv.Atoi(cell(row, 1))
		if err != nil || degree < 1 {
			return nil, fmt.Errorf("row %d: invalid degree %q", line, cell(row, 1))
		}
		q, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		t, ok := byName[topicName]
		if !ok {
			t = &Topic{Name: topicName, Category: category, Degrees: make(map[int][]Question)}
			byName[topicName] = t
			order = append(order, topicName)
		}
		t.Degrees[degree] = append(t.Degrees[degree], q)
	}

	topics := make([]Topic, 0, len(order))
	for _, name := range order {
		topics = append(topics, *byName[name])
	}
	return topics, nil
}

func parseRow(row []string) (Question, error) {
	q := Question{
		Kind:    Kind(strings.ToLower(cell(row, 2))),
		Prompt:  cell(row, 3),
		Answers: splitList(cell(row, 4)),
		Choices: splitList(cell(row, 5)),
	}
	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Choices) < 2 {
			return q, fmt.Errorf("multiple choice needs at least 2 choices")
		}
	case KindFreeText:
		q.Choices = nil
	default:
		return q, fmt.Errorf("unknown kind %q", q.Kind)
	}
	if q.Prompt == "" {
		return q, fmt.Errorf("prompt is empty")
	}
	if len(q.Answers) == 0 {
		return q, fmt.Errorf("answers are empty")
	}
	return q, q.Validate()
}

func checkHeader(row []string) error {
	for i, want := range xlsxHeader {
		if !strings.EqualFold(cell(row, i), want) {
			return fmt.Errorf("header column %d = %q, want %q", i+1, cell(row, i), want)
		}
	}
	return nil
}

// cell returns the trimmed value at index i, or "" past the end of the row.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
