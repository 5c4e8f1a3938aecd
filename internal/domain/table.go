package domain

// Table é o conteúdo tabular de uma planilha: colunas e linhas ordenadas.
// Depois de criada pela ingestão a tabela não é mais alterada.
type Table struct {
	Columns []string
	Rows    [][]Value

	index map[string]int
}

// Column é um acesso verificado a uma coluna existente da tabela
type Column struct {
	Name  string
	Index int

	table *Table
}

// TablePreview é a representação serializável de um trecho da tabela
type TablePreview struct {
	Columns []string  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// NewTable cria uma tabela completando com valores ausentes as linhas mais curtas que o cabeçalho
func NewTable(columns []string, rows [][]Value) *Table {
	t := &Table{
		Columns: columns,
		Rows:    make([][]Value, 0, len(rows)),
		index:   make(map[string]int, len(columns)),
	}

	for i, name := range columns {
		if _, exists := t.index[name]; !exists {
			t.index[name] = i
		}
	}

	for _, row := range rows {
		if len(row) < len(columns) {
			padded := make([]Value, len(columns))
			copy(padded, row)
			row = padded
		} else if len(row) > len(columns) {
			row = row[:len(columns)]
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Len retorna a quantidade de linhas
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column busca uma coluna pelo nome. O segundo retorno indica se ela existe.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}

	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}

	return Column{Name: name, Index: i, table: t}, true
}

// FirstColumn retorna a primeira coluna existente entre os nomes candidatos
func (t *Table) FirstColumn(names ...string) (Column, bool) {
	for _, name := range names {
		if col, ok := t.Column(name); ok {
			return col, true
		}
	}
	return Column{}, false
}

// Subset cria uma nova tabela com as linhas indicadas, na ordem recebida.
// As linhas são compartilhadas com a tabela original, que é imutável.
func (t *Table) Subset(rowIndexes []int) *Table {
	rows := make([][]Value, 0, len(rowIndexes))
	for _, i := range rowIndexes {
		rows = append(rows, t.Rows[i])
	}

	return &Table{
		Columns: t.Columns,
		Rows:    rows,
		index:   t.index,
	}
}

// Head retorna as primeiras n linhas
func (t *Table) Head(n int) TablePreview {
	if n > t.Len() {
		n = t.Len()
	}
	if n < 0 {
		n = 0
	}

	return TablePreview{
		Columns: t.Columns,
		Rows:    t.Rows[:n],
	}
}

// Value retorna o valor da coluna na linha indicada
func (c Column) Value(row int) Value {
	return c.table.Rows[row][c.Index]
}

// Len retorna a quantidade de linhas da tabela à qual a coluna pertence
func (c Column) Len() int {
	return c.table.Len()
}

// HasValues indica se a coluna tem ao menos um valor não ausente
func (c Column) HasValues() bool {
	for i := 0; i < c.Len(); i++ {
		if !c.Value(i).IsMissing() {
			return true
		}
	}
	return false
}

// HasNumbers indica se a coluna tem ao menos um valor numérico
func (c Column) HasNumbers() bool {
	for i := 0; i < c.Len(); i++ {
		if _, ok := c.Value(i).Number(); ok {
			return true
		}
	}
	return false
}
