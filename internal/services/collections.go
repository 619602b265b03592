package services

// Snapshot names the API fields copied into an audit row. Empty entries leave
// the audit column NULL.
type Snapshot struct {
	Titulo      string
	Periodo     string
	Anio        string
	TemaGeneral string
}

// Collection is the static descriptor for one catalog table. All stores,
// handlers and audit writes are driven off these tables.
type Collection struct {
	Slug     string // route segment, e.g. "diario-oficial"
	Table    string
	Fields   []Field
	Snapshot Snapshot
	SetMFN   bool // copy the generated id into mfn after insert
}

func (c Collection) FieldByName(name string) (Field, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// ColumnNames returns the API-visible field names in declaration order, for
// the /{collection}/columns endpoint.
func (c Collection) ColumnNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, field := range c.Fields {
		names = append(names, field.Name)
	}
	return names
}

var DiarioOficial = Collection{
	Slug:  "diario-oficial",
	Table: "diario_oficial",
	Fields: []Field{
		{Name: "Id", Column: "id", Kind: KindInt, ReadOnly: true},
		{Name: "Año", Column: "anio", Kind: KindText, Required: true, MaxLen: 16},
		{Name: "Tomo", Column: "tomo", Kind: KindInt, Required: true},
		{Name: "Periodo", Column: "periodo", Kind: KindText, MaxLen: 150},
		{Name: "Fecha_de_creacion", Column: "fecha_de_creacion", Kind: KindDate},
		{Name: "Status", Column: "status", Kind: KindBool},
	},
	Snapshot: Snapshot{Periodo: "Periodo", Anio: "Año"},
}

var Periodicos = Collection{
	Slug:  "periodicos",
	Table: "periodicos",
	Fields: []Field{
		{Name: "Id", Column: "id", Kind: KindInt, ReadOnly: true},
		{Name: "Titulo", Column: "titulo", Kind: KindText, Required: true, MaxLen: 100},
		{Name: "Año", Column: "anio", Kind: KindText, Required: true, MaxLen: 100},
		{Name: "Tomo", Column: "tomo", Kind: KindInt, Required: true},
		{Name: "Observaciones", Column: "observaciones", Kind: KindText, MaxLen: 150},
		{Name: "Fecha_de_creacion", Column: "fecha_de_creacion", Kind: KindDate},
		{Name: "Status", Column: "status", Kind: KindBool},
	},
	Snapshot: Snapshot{Titulo: "Titulo", Anio: "Año"},
}

var ColeccionDurango = Collection{
	Slug:  "colecciondurango",
	Table: "coleccion_durango",
	Fields: []Field{
		{Name: "Id", Column: "id", Kind: KindInt, ReadOnly: true},
		{Name: "Letra", Column: "letra", Kind: KindText, Required: true, MaxLen: 1},
		{Name: "Titulo", Column: "titulo", Kind: KindText, Required: true, MaxLen: 200},
		{Name: "Autor", Column: "autor", Kind: KindText, Required: true, MaxLen: 100},
		{Name: "Año", Column: "anio", Kind: KindText, MaxLen: 100},
		{Name: "Editorial", Column: "editorial", Kind: KindText, MaxLen: 100},
		{Name: "Edición", Column: "edicion", Kind: KindText, MaxLen: 100},
		{Name: "ISBN", Column: "isbn", Kind: KindText, MaxLen: 100},
		{Name: "Ejemplares", Column: "ejemplares", Kind: KindInt, Required: true},
		{Name: "Fecha_de_creacion", Column: "fecha_de_creacion", Kind: KindDate},
		{Name: "Status", Column: "status", Kind: KindBool},
	},
	Snapshot: Snapshot{Titulo: "Titulo", Anio: "Año"},
}

var Libros = Collection{
	Slug:   "libros",
	Table:  "libros",
	SetMFN: true,
	Fields: []Field{
		{Name: "MFN", Column: "mfn", Kind: KindInt, ReadOnly: true},
		{Name: "Id", Column: "id", Kind: KindInt, ReadOnly: true},
		{Name: "Idioma", Column: "idioma", Kind: KindText, MaxLen: 20},
		{Name: "Autor", Column: "autor", Kind: KindText, MaxLen: 100},
		{Name: "Autor_Corporativo", Column: "autor_corporativo", Kind: KindText, MaxLen: 100},
		{Name: "Autor_Uniforme", Column: "autor_uniforme", Kind: KindText},
		// legacy catalogs search titles by prefix
		{Name: "Titulo", Column: "titulo", Kind: KindText, Prefix: true},
		{Name: "Edicion", Column: "edicion", Kind: KindText},
		{Name: "Lugar_Publicacion", Column: "lugar_publicacion", Kind: KindText},
		{Name: "Descripcion", Column: "descripcion", Kind: KindText},
		{Name: "Serie", Column: "serie", Kind: KindText},
		{Name: "Notas", Column: "notas", Kind: KindText},
		{Name: "Encuadernado_con", Column: "encuadernado_con", Kind: KindText},
		{Name: "Bibliografia", Column: "bibliografia", Kind: KindText},
		{Name: "Contenido", Column: "contenido", Kind: KindText},
		{Name: "Tema_general", Column: "tema_general", Kind: KindText, MaxLen: 100},
		{Name: "Coautor_personal", Column: "coautor_personal", Kind: KindText},
		{Name: "Memorico_2020", Column: "memorico_2020", Kind: KindText},
		{Name: "Memorico_2024", Column: "memorico_2024", Kind: KindText},
		{Name: "Coleccion", Column: "coleccion", Kind: KindText},
		{Name: "Fecha_de_creacion", Column: "fecha_de_creacion", Kind: KindDate},
		{Name: "Status", Column: "status", Kind: KindBool},
	},
	Snapshot: Snapshot{Titulo: "Titulo", TemaGeneral: "Tema_general"},
}

// Collections lists every catalog descriptor in routing order.
var Collections = []Collection{DiarioOficial, Periodicos, ColeccionDurango, Libros}

// AuditTables maps the tabla_afectada value stored in audit rows to the
// collection used for "consultar registro". The historical data carries a
// 'coleccion' alias for libros, so both names resolve to the same table.
var AuditTables = map[string]Collection{
	"diario_oficial":    DiarioOficial,
	"periodicos":        Periodicos,
	"coleccion_durango": ColeccionDurango,
	"libros":            Libros,
	"coleccion":         Libros,
}
