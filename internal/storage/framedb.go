package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sansuarezs055/gaslab/internal/gas"
)

const frameSchema = `
CREATE TABLE IF NOT EXISTS frames (
	step     INTEGER,
	time     REAL,
	energy   REAL,
	pressure REAL
);
CREATE TABLE IF NOT EXISTS particles (
	step     INTEGER,
	id       INTEGER,
	x        REAL,
	y        REAL,
	speed    REAL
);
CREATE INDEX IF NOT EXISTS idx_particles_step ON particles (step, id);
`

const insertFrame = `INSERT INTO frames VALUES (?, ?, ?, ?);`
const insertParticle = `INSERT INTO particles VALUES (?, ?, ?, ?, ?);`
const queryParticles = `SELECT id, x, y, speed FROM particles WHERE step = ? ORDER BY id ASC;`
const queryPressure = `SELECT time, pressure FROM frames ORDER BY step ASC;`

// FrameDB streams frames into a SQLite file as the run progresses. It is
// a gas.FrameSink; one transaction per frame keeps the single-writer
// constraint of SQLite out of the simulation loop's way.
type FrameDB struct {
	db          *sql.DB
	insFrame    *sql.Stmt
	insParticle *sql.Stmt
}

// OpenFrameDB opens (creating if needed) the database at path. Journaling
// is disabled; the file is a run artifact, not a system of record.
func OpenFrameDB(path string) (*FrameDB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(frameSchema); err != nil {
		db.Close()
		return nil, err
	}

	insFrame, err := db.Prepare(insertFrame)
	if err != nil {
		db.Close()
		return nil, err
	}
	insParticle, err := db.Prepare(insertParticle)
	if err != nil {
		insFrame.Close()
		db.Close()
		return nil, err
	}

	return &FrameDB{db: db, insFrame: insFrame, insParticle: insParticle}, nil
}

func (f *FrameDB) OnFrame(frame gas.Frame) error {
	tx, err := f.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Stmt(f.insFrame).Exec(frame.Step, frame.Time, frame.Energy, frame.Pressure); err != nil {
		tx.Rollback()
		return err
	}
	for i, p := range frame.Particles {
		if _, err := tx.Stmt(f.insParticle).Exec(frame.Step, i, p.X, p.Y, p.Speed); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// LoadFrame reads back one frame's particles.
func (f *FrameDB) LoadFrame(step int) ([]gas.FrameParticle, error) {
	rows, err := f.db.Query(queryParticles, step)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	particles := make([]gas.FrameParticle, 0)
	for rows.Next() {
		var id int
		var p gas.FrameParticle
		if err := rows.Scan(&id, &p.X, &p.Y, &p.Speed); err != nil {
			return nil, err
		}
		particles = append(particles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(particles) == 0 {
		return nil, fmt.Errorf("storage: no frame at step %d", step)
	}
	return particles, nil
}

// LoadPressureSeries reads back the whole pressure series.
func (f *FrameDB) LoadPressureSeries() ([]float64, []float64, error) {
	rows, err := f.db.Query(queryPressure)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	times := make([]float64, 0)
	pressures := make([]float64, 0)
	for rows.Next() {
		var t, p float64
		if err := rows.Scan(&t, &p); err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		pressures = append(pressures, p)
	}
	return times, pressures, rows.Err()
}

func (f *FrameDB) Close() error {
	f.insFrame.Close()
	f.insParticle.Close()
	return f.db.Close()
}
