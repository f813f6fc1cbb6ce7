package mysql

// Create is first-write-wins: `id = id` makes the duplicate branch a no-op so
// an existing row (including its score) is never overwritten. RowsAffected is
// 1 for a fresh insert and 0 for the no-op, which is how the repo reports
// created vs duplicate.
const createStoreSQL = `
INSERT INTO stores
  (id, name, address, neighborhood, img_url, score)
VALUES
  (?, ?, ?, ?, ?, 0)
ON DUPLICATE KEY UPDATE
  id = id
`

const getStoreSQL = `
SELECT id, name, address, neighborhood, img_url, score
FROM stores
WHERE id = ?
`

// Single-statement add keeps concurrent votes atomic: no client ever reads,
// adds one and writes back.
const incrementScoreSQL = `
UPDATE stores SET score = score + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`
