package history

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,
    component TEXT NOT NULL,
    platform TEXT NOT NULL,
    provider TEXT,
    version TEXT,
    success BOOLEAN NOT NULL,
    error_message TEXT,
    duration_ms INTEGER,
    timestamp INTEGER NOT NULL -- unix nanoseconds, UTC
);

CREATE INDEX IF NOT EXISTS idx_events_component ON events(component, platform);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
`
