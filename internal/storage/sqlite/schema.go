package sqlite

const schema = `
-- Archived simulation events
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT '',
    agent_id TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    salience REAL NOT NULL DEFAULT 0,
    category TEXT NOT NULL DEFAULT 'notable',
    sim_day INTEGER NOT NULL DEFAULT 0,
    data TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
CREATE INDEX IF NOT EXISTS idx_events_salience ON events(salience);
CREATE INDEX IF NOT EXISTS idx_events_agent ON events(agent_id);
`
