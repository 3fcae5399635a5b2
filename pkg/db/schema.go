package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- URLs table: every page a post was written from
CREATE TABLE IF NOT EXISTS urls (
    url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    original_url TEXT NOT NULL UNIQUE,
    canonical_url TEXT,
    scheme TEXT NOT NULL,
    domain TEXT NOT NULL,
    path TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_urls_domain ON urls(domain);

-- Posts table: one row per generated post
CREATE TABLE IF NOT EXISTS posts (
    post_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id INTEGER,
    source TEXT NOT NULL,          -- URL, or "html" for inline markup
    source_hash TEXT NOT NULL,     -- sha256 of the URL or markup
    title TEXT NOT NULL,
    keywords TEXT NOT NULL,        -- JSON array
    blog_post TEXT NOT NULL,
    comment_summary TEXT NOT NULL, -- JSON object
    language TEXT,
    created_at TIMESTAMP NOT NULL,
    FOREIGN KEY (url_id) REFERENCES urls(url_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_source_hash ON posts(source_hash);
CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at);
`
