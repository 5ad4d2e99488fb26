// seed_catalog genera un script SQL para poblar el catálogo de películas a partir de un CSV
// exportado del sistema anterior (ISO-8859-1, separado por ';').
//
// Columnas: titulo;director;genero;anio;duracion;tarifa;copias
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv] [--utf8]
// Escribe: migrations/0002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogNamespace fija los IDs generados: el mismo título y director siempre da el mismo UUID.
var catalogNamespace = uuid.MustParse("6f1c9a52-3b0e-4d7a-9c59-0e2f4b8d1a73")

type movieRow struct {
	id       string
	title    string
	director string
	genre    string
	year     int
	duration int
	rate     decimal.Decimal
	copies   int
}

func main() {
	csvPath := "catalogo.csv"
	latin1 := true
	for _, a := range os.Args[1:] {
		if a == "--utf8" {
			latin1 = false
			continue
		}
		csvPath = a
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	movies, skipped, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "0002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, movies); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d películas (%d filas descartadas)\n", outPath, len(movies), skipped)
}

// parseCatalog lee el CSV; descarta filas incompletas o con valores fuera de rango.
func parseCatalog(r io.Reader) ([]movieRow, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var movies []movieRow
	skipped := 0
	seen := make(map[string]bool)
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if line == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "titulo") {
			continue
		}
		m, ok := parseRow(rec)
		if !ok || seen[m.id] {
			skipped++
			continue
		}
		seen[m.id] = true
		movies = append(movies, m)
	}
	return movies, skipped, nil
}

func parseRow(rec []string) (movieRow, bool) {
	if len(rec) < 7 {
		return movieRow{}, false
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	year, errY := strconv.Atoi(rec[3])
	duration, errD := strconv.Atoi(rec[4])
	// el sistema anterior exporta la tarifa con coma decimal
	rate, errR := decimal.NewFromString(strings.Replace(rec[5], ",", ".", 1))
	copies, errC := strconv.Atoi(rec[6])
	if rec[0] == "" || errY != nil || errD != nil || errR != nil || errC != nil {
		return movieRow{}, false
	}
	if rate.IsNegative() || copies < 0 || duration < 0 {
		return movieRow{}, false
	}
	key := strings.ToLower(rec[0]) + "|" + strings.ToLower(rec[1])
	return movieRow{
		id:       uuid.NewSHA1(catalogNamespace, []byte(key)).String(),
		title:    rec[0],
		director: rec[1],
		genre:    rec[2],
		year:     year,
		duration: duration,
		rate:     rate.Round(2),
		copies:   copies,
	}, true
}

func writeSQL(w io.Writer, movies []movieRow) error {
	if _, err := io.WriteString(w, "-- Catálogo inicial de películas\n-- Generado por cmd/seed_catalog\n\n"); err != nil {
		return err
	}
	for _, m := range movies {
		_, err := fmt.Fprintf(w,
			"INSERT INTO movies (id, title, director, genre, release_year, duration, rental_rate, stock_quantity, total_copies, is_available)\n"+
				"VALUES ('%s', '%s', '%s', '%s', %d, %d, %s, %d, %d, %t)\n"+
				"ON CONFLICT DO NOTHING;\n",
			m.id, escapeSQL(m.title), escapeSQL(m.director), escapeSQL(m.genre),
			m.year, m.duration, m.rate.StringFixed(2), m.copies, m.copies, m.copies > 0,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
