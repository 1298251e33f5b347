package migrations

import "jobradar/internal/database/schema"

var CreateJobsTable = schema.Migration{
	Version:     1,
	Description: "Create jobs table",
	Up: `
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID,
			company String,
			title String,
			city String,
			state String,
			apply_url String,
			level String,
			category String,
			tier String,
			remote UInt8,
			source String,
			posted_at DateTime,
			first_seen DateTime,
			last_seen DateTime,
			raw_data String,
			PRIMARY KEY (id)
		) ENGINE = ReplacingMergeTree(last_seen)
		PARTITION BY toYYYYMM(first_seen)
		ORDER BY (id, first_seen)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS jobs`,
}
