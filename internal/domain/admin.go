package domain

type Admin struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Hash     string `db:"password_hash" json:"-"`
}
