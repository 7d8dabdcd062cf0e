package mysql

// Reviews are append-only; there is deliberately no unique key on
// (product_id, review_text), so replayed requests produce duplicate rows.
const createReviewsTableSQL = `
CREATE TABLE IF NOT EXISTS reviews (
  id                       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
  product_id               VARCHAR(64)  NOT NULL,
  review_text              TEXT         NOT NULL,
  sentiment_score          DOUBLE       NOT NULL,
  sentiment_magnitude      DOUBLE       NOT NULL,
  sentiment_classification VARCHAR(16)  NOT NULL,
  processed_timestamp      TIMESTAMP(6) NOT NULL,
  KEY idx_product_time (product_id, processed_timestamp),
  KEY idx_classification (sentiment_classification)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertReviewSQL = `
INSERT INTO reviews
  (product_id, review_text, sentiment_score, sentiment_magnitude, sentiment_classification, processed_timestamp)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const listReviewsSQL = `
SELECT
  product_id,
  review_text,
  sentiment_score,
  sentiment_magnitude,
  sentiment_classification,
  processed_timestamp
FROM reviews
WHERE product_id = ?
ORDER BY processed_timestamp DESC, id DESC
LIMIT ?
`

// Per-class counts and means; the overall mean is recombined in Go.
const summarySQL = `
SELECT
  sentiment_classification,
  COUNT(*),
  AVG(sentiment_score)
FROM reviews
GROUP BY sentiment_classification
`
