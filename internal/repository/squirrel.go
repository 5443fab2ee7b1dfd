package repository

import sq "github.com/Masterminds/squirrel"

// psql is the statement builder every repository in this package queries
// through, configured for PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
