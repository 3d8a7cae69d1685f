package db

// SchemaSQL contains the database schema initialization SQL.
// Three work-item tables share the lifecycle columns; the per-type text
// fields differ (blocker: impact, action_item: due_date, discussion_topic:
// explicit severity).
const SchemaSQL = `
    -- ==========================================================================
    -- VENDOR TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS vendor SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON vendor TYPE string;

    -- ==========================================================================
    -- BLOCKER TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS blocker SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS vendor ON blocker TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON blocker TYPE string;
    DEFINE FIELD IF NOT EXISTS impact ON blocker TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS ask ON blocker TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS priority ON blocker TYPE string DEFAULT 'medium';
    DEFINE FIELD IF NOT EXISTS status ON blocker TYPE string DEFAULT 'open';
    DEFINE FIELD IF NOT EXISTS raised_at ON blocker TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS resolved_at ON blocker TYPE option<datetime>;
    DEFINE FIELD IF NOT EXISTS escalation_count ON blocker TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS owner ON blocker TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS project ON blocker TYPE option<string>;

    DEFINE INDEX IF NOT EXISTS blocker_vendor ON blocker FIELDS vendor;
    DEFINE INDEX IF NOT EXISTS blocker_status ON blocker FIELDS status;

    -- ==========================================================================
    -- ACTION ITEM TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS action_item SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS vendor ON action_item TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON action_item TYPE string;
    DEFINE FIELD IF NOT EXISTS context ON action_item TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS ask ON action_item TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS priority ON action_item TYPE string DEFAULT 'medium';
    DEFINE FIELD IF NOT EXISTS status ON action_item TYPE string DEFAULT 'open';
    DEFINE FIELD IF NOT EXISTS raised_at ON action_item TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS resolved_at ON action_item TYPE option<datetime>;
    DEFINE FIELD IF NOT EXISTS escalation_count ON action_item TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS owner ON action_item TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS project ON action_item TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS due_date ON action_item TYPE option<datetime>;

    DEFINE INDEX IF NOT EXISTS action_item_vendor ON action_item FIELDS vendor;
    DEFINE INDEX IF NOT EXISTS action_item_status ON action_item FIELDS status;

    -- ==========================================================================
    -- DISCUSSION TOPIC TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS discussion_topic SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS vendor ON discussion_topic TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON discussion_topic TYPE string;
    DEFINE FIELD IF NOT EXISTS context ON discussion_topic TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS ask ON discussion_topic TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS priority ON discussion_topic TYPE string DEFAULT 'medium';
    DEFINE FIELD IF NOT EXISTS status ON discussion_topic TYPE string DEFAULT 'open';
    DEFINE FIELD IF NOT EXISTS raised_at ON discussion_topic TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS resolved_at ON discussion_topic TYPE option<datetime>;
    DEFINE FIELD IF NOT EXISTS escalation_count ON discussion_topic TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS owner ON discussion_topic TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS project ON discussion_topic TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS severity ON discussion_topic TYPE option<string>;

    DEFINE INDEX IF NOT EXISTS discussion_topic_vendor ON discussion_topic FIELDS vendor;
    DEFINE INDEX IF NOT EXISTS discussion_topic_status ON discussion_topic FIELDS status;
`
