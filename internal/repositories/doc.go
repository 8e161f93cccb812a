// package repositories provides SQLite implementations of [models.Repository].
//
// [SessionRepository] persists dashboard login sessions. Deletes are soft: the row keeps its data and gains a
// deleted_at timestamp, and every read filters deleted rows out.
package repositories
