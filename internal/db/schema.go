package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Domain tables reference their owning account through owner_id. References
// between domain records (aviary_id, father_id, mother_id, couple_id, nest_id,
// bird_id) are deliberately unconstrained: they are weak references that may
// dangle after a delete, and reads resolve them to "not found" instead of the
// schema rejecting the write.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL,
    name          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_active
    ON users(email) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS birds (
    id             TEXT PRIMARY KEY,
    owner_id       TEXT NOT NULL REFERENCES users(id),
    ring_number    TEXT NOT NULL,
    name           TEXT NOT NULL,
    species        TEXT NOT NULL,
    subspecies     TEXT,
    gender         TEXT NOT NULL CHECK (gender IN ('male', 'female', 'unknown')),
    color_mutation TEXT,
    birth_date     DATETIME NOT NULL,
    origin         TEXT NOT NULL CHECK (origin IN ('purchased', 'bred', 'rescue')),
    status         TEXT NOT NULL DEFAULT 'active'
                   CHECK (status IN ('active', 'deceased', 'sold', 'exchanged')),
    aviary_id      TEXT,
    father_id      TEXT,
    mother_id      TEXT,
    image          BLOB,
    image_mime     TEXT,
    notes          TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_birds_owner ON birds(owner_id);
CREATE INDEX IF NOT EXISTS idx_birds_aviary ON birds(owner_id, aviary_id);

CREATE TABLE IF NOT EXISTS couples (
    id         TEXT PRIMARY KEY,
    owner_id   TEXT NOT NULL REFERENCES users(id),
    male_id    TEXT NOT NULL,
    female_id  TEXT NOT NULL,
    season     TEXT NOT NULL,
    active     INTEGER NOT NULL DEFAULT 1,
    notes      TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_couples_owner ON couples(owner_id);

CREATE TABLE IF NOT EXISTS nests (
    id                  TEXT PRIMARY KEY,
    owner_id            TEXT NOT NULL REFERENCES users(id),
    couple_id           TEXT NOT NULL,
    start_date          DATETIME NOT NULL,
    aviary_id           TEXT,
    active              INTEGER NOT NULL DEFAULT 1,
    egg_count           INTEGER NOT NULL DEFAULT 0,
    expected_hatch_date DATETIME,
    actual_hatch_date   DATETIME,
    hatched_count       INTEGER NOT NULL DEFAULT 0,
    notes               TEXT,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_nests_couple ON nests(owner_id, couple_id);

CREATE TABLE IF NOT EXISTS eggs (
    id         TEXT PRIMARY KEY,
    owner_id   TEXT NOT NULL REFERENCES users(id),
    nest_id    TEXT NOT NULL,
    lay_date   DATETIME NOT NULL,
    status     TEXT NOT NULL DEFAULT 'laid'
               CHECK (status IN ('laid', 'fertile', 'infertile', 'hatched', 'dead')),
    hatch_date DATETIME,
    bird_id    TEXT,
    notes      TEXT
);

CREATE INDEX IF NOT EXISTS idx_eggs_nest ON eggs(owner_id, nest_id);

CREATE TABLE IF NOT EXISTS health_records (
    id          TEXT PRIMARY KEY,
    owner_id    TEXT NOT NULL REFERENCES users(id),
    bird_id     TEXT NOT NULL,
    date        DATETIME NOT NULL,
    type        TEXT NOT NULL CHECK (type IN ('vaccination', 'medication', 'checkup', 'other')),
    description TEXT NOT NULL,
    notes       TEXT
);

CREATE INDEX IF NOT EXISTS idx_health_records_bird ON health_records(owner_id, bird_id);

CREATE TABLE IF NOT EXISTS aviaries (
    id          TEXT PRIMARY KEY,
    owner_id    TEXT NOT NULL REFERENCES users(id),
    name        TEXT NOT NULL,
    location    TEXT,
    capacity    INTEGER NOT NULL CHECK (capacity >= 1),
    description TEXT,
    notes       TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_aviaries_owner ON aviaries(owner_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
