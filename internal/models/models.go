package models

import "time"

type Usuario struct {
	ID                int       `db:"id" json:"Id"`
	Nombres           *string   `db:"nombres" json:"Nombres"`
	Apellidos         *string   `db:"apellidos" json:"Apellidos"`
	CorreoElectronico string    `db:"correo_electronico" json:"Correo_Electronico"`
	Contrasena        string    `db:"contrasena" json:"-"`
	FechaDeCreacion   time.Time `db:"fecha_de_creacion" json:"Fecha_de_Creacion"`
	Status            int       `db:"status" json:"Status"`
}

type Rol struct {
	ID            int64      `db:"id" json:"id"`
	Nombre        string     `db:"nombre" json:"nombre"`
	Slug          string     `db:"slug" json:"slug"`
	Descripcion   *string    `db:"descripcion" json:"descripcion"`
	CreadoEn      time.Time  `db:"creado_en" json:"creado_en"`
	ActualizadoEn *time.Time `db:"actualizado_en" json:"actualizado_en"`
}

type RolUsuario struct {
	UsuarioID   int       `db:"usuario_id" json:"usuario_id"`
	RolID       int64     `db:"rol_id" json:"rol_id"`
	AsignadoPor *int      `db:"asignado_por" json:"asignado_por"`
	AsignadoEn  time.Time `db:"asignado_en" json:"asignado_en"`
}

// Auditoria is one row of auditoria_registros or auditoria_eliminados.
// titulo/Periodo/Año/Tema_general are denormalized snapshots taken at the
// moment of the mutation so the audit list renders without joining back.
type Auditoria struct {
	IDAuditoria    int        `db:"id_auditoria" json:"id_auditoria"`
	TablaAfectada  *string    `db:"tabla_afectada" json:"tabla_afectada"`
	IDRegistro     *int       `db:"id_registro" json:"id_registro"`
	Titulo         *string    `db:"titulo" json:"titulo"`
	Periodo        *string    `db:"periodo" json:"Periodo"`
	Anio           *string    `db:"anio" json:"Año"`
	TemaGeneral    *string    `db:"tema_general" json:"Tema_general"`
	FechaAuditoria *time.Time `db:"fecha_auditoria" json:"fecha_auditoria"`
	Usuario        *string    `db:"usuario" json:"usuario"`
}

type MetricSample struct {
	ID                string    `db:"id" json:"id"`
	CapturedAt        time.Time `db:"captured_at" json:"capturedAt"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes" json:"processRssBytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes" json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes" json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes" json:"diskTotalBytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes" json:"diskUsedBytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load" json:"processCpuLoad"`
	SystemCpuLoad     float64   `db:"system_cpu_load" json:"systemCpuLoad"`
}
