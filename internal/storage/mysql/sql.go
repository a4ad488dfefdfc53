package mysql

// Note: review_id is the public id; seq is a surrogate key only.
const insertReviewsPrefix = "INSERT INTO reviews\n  (review_id, body, location, created_at)\nVALUES "

// Use VALUES(col) for broad compatibility.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  body       = VALUES(body),\n" +
	"  location   = VALUES(location),\n" +
	"  created_at = VALUES(created_at)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listReviewsSQL = `
SELECT review_id, body, location, created_at
FROM reviews
ORDER BY created_at, seq
`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`
