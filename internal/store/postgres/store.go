package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fakenft/internal/domain"
	"fakenft/internal/seed"
	"fakenft/internal/store"
)

const schema = `
create table if not exists collections (
	id text primary key,
	position int not null,
	name text not null,
	cover text not null default '',
	nfts text[] not null default '{}',
	description text not null default '',
	author text not null default '',
	created_at text not null default ''
);
create table if not exists nfts (
	id text primary key,
	position int not null,
	name text not null,
	images text[] not null default '{}',
	rating int not null default 0,
	price double precision not null default 0,
	author text not null default '',
	description text not null default '',
	created_at text not null default ''
);
create table if not exists users (
	id text primary key,
	position int not null,
	name text not null,
	avatar text not null default '',
	description text not null default '',
	website text not null default '',
	nfts text[] not null default '{}',
	rating text not null default ''
);
create table if not exists profiles (
	id text primary key,
	name text not null,
	avatar text not null default '',
	description text not null default '',
	website text not null default '',
	nfts text[] not null default '{}',
	likes text[] not null default '{}'
);
create table if not exists orders (
	id text primary key,
	nfts text[] not null default '{}'
);
create table if not exists currencies (
	id text primary key,
	position int not null,
	title text not null,
	name text not null,
	image text not null default ''
);
create table if not exists payments (
	id uuid primary key,
	order_id text not null,
	currency_id text not null,
	success boolean not null,
	created_at timestamptz not null default now()
);`

type Store struct {
	db *sql.DB
}

func NewStore(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Seed upserts every fixture record. Rows not in the fixture are kept.
func (s *Store) Seed(f seed.Fixture) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, c := range f.Collections {
		if _, err := tx.Exec(
			`insert into collections(id, position, name, cover, nfts, description, author, created_at)
			 values ($1,$2,$3,$4,$5,$6,$7,$8)
			 on conflict (id) do update
			 set position = excluded.position,
			     name = excluded.name,
			     cover = excluded.cover,
			     nfts = excluded.nfts,
			     description = excluded.description,
			     author = excluded.author,
			     created_at = excluded.created_at`,
			c.ID, i, c.Name, c.Cover, pq.Array(c.NFTs), c.Description, c.Author, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("seed collection %s: %w", c.ID, err)
		}
	}
	for i, n := range f.NFTs {
		if _, err := tx.Exec(
			`insert into nfts(id, position, name, images, rating, price, author, description, created_at)
			 values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 on conflict (id) do update
			 set position = excluded.position,
			     name = excluded.name,
			     images = excluded.images,
			     rating = excluded.rating,
			     price = excluded.price,
			     author = excluded.author,
			     description = excluded.description,
			     created_at = excluded.created_at`,
			n.ID, i, n.Name, pq.Array(n.Images), n.Rating, n.Price, n.Author, n.Description, n.CreatedAt,
		); err != nil {
			return fmt.Errorf("seed nft %s: %w", n.ID, err)
		}
	}
	for i, u := range f.Users {
		if _, err := tx.Exec(
			`insert into users(id, position, name, avatar, description, website, nfts, rating)
			 values ($1,$2,$3,$4,$5,$6,$7,$8)
			 on conflict (id) do update
			 set position = excluded.position,
			     name = excluded.name,
			     avatar = excluded.avatar,
			     description = excluded.description,
			     website = excluded.website,
			     nfts = excluded.nfts,
			     rating = excluded.rating`,
			u.ID, i, u.Name, u.Avatar, u.Description, u.Website, pq.Array(u.NFTs), u.Rating,
		); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for i, c := range f.Currencies {
		if _, err := tx.Exec(
			`insert into currencies(id, position, title, name, image)
			 values ($1,$2,$3,$4,$5)
			 on conflict (id) do update
			 set position = excluded.position,
			     title = excluded.title,
			     name = excluded.name,
			     image = excluded.image`,
			c.ID, i, c.Title, c.Name, c.Image,
		); err != nil {
			return fmt.Errorf("seed currency %s: %w", c.ID, err)
		}
	}
	p := f.Profile
	if _, err := tx.Exec(
		`insert into profiles(id, name, avatar, description, website, nfts, likes)
		 values ($1,$2,$3,$4,$5,$6,$7)
		 on conflict (id) do nothing`,
		p.ID, p.Name, p.Avatar, p.Description, p.Website, pq.Array(nonNil(p.NFTs)), pq.Array(nonNil(p.Likes)),
	); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	if _, err := tx.Exec(
		`insert into orders(id, nfts) values ($1, $2) on conflict (id) do nothing`,
		f.Order.ID, pq.Array(nonNil(f.Order.NFTs)),
	); err != nil {
		return fmt.Errorf("seed order: %w", err)
	}
	return tx.Commit()
}

func (s *Store) Collections() ([]domain.Collection, error) {
	rows, err := s.db.Query(
		`select id, name, cover, nfts, description, author, created_at
		 from collections order by position asc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Collection, 0, 16)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Collection(id string) (domain.Collection, error) {
	row := s.db.QueryRow(
		`select id, name, cover, nfts, description, author, created_at
		 from collections where id = $1`,
		id,
	)
	c, err := scanCollection(row)
	return c, notFound(err)
}

func (s *Store) NFTs() ([]domain.NFT, error) {
	rows, err := s.db.Query(
		`select id, name, images, rating, price, author, description, created_at
		 from nfts order by position asc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.NFT, 0, 64)
	for rows.Next() {
		n, err := scanNFT(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) NFT(id string) (domain.NFT, error) {
	row := s.db.QueryRow(
		`select id, name, images, rating, price, author, description, created_at
		 from nfts where id = $1`,
		id,
	)
	n, err := scanNFT(row)
	return n, notFound(err)
}

func (s *Store) Users() ([]domain.User, error) {
	rows, err := s.db.Query(
		`select id, name, avatar, description, website, nfts, rating
		 from users order by position asc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, 16)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) User(id string) (domain.User, error) {
	row := s.db.QueryRow(
		`select id, name, avatar, description, website, nfts, rating
		 from users where id = $1`,
		id,
	)
	u, err := scanUser(row)
	return u, notFound(err)
}

func (s *Store) Profile(id string) (domain.Profile, error) {
	var p domain.Profile
	err := s.db.QueryRow(
		`select id, name, avatar, description, website, nfts, likes
		 from profiles where id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Avatar, &p.Description, &p.Website, pq.Array(&p.NFTs), pq.Array(&p.Likes))
	return p, notFound(err)
}

func (s *Store) SaveProfile(p domain.Profile) (domain.Profile, error) {
	res, err := s.db.Exec(
		`update profiles
		 set name = $2, avatar = $3, description = $4, website = $5, nfts = $6, likes = $7
		 where id = $1`,
		p.ID, p.Name, p.Avatar, p.Description, p.Website, pq.Array(nonNil(p.NFTs)), pq.Array(nonNil(p.Likes)),
	)
	if err != nil {
		return domain.Profile{}, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.Profile{}, store.ErrNotFound
	}
	return s.Profile(p.ID)
}

func (s *Store) Order(id string) (domain.Order, error) {
	var o domain.Order
	err := s.db.QueryRow(`select id, nfts from orders where id = $1`, id).Scan(&o.ID, pq.Array(&o.NFTs))
	return o, notFound(err)
}

func (s *Store) SaveOrder(o domain.Order) (domain.Order, error) {
	res, err := s.db.Exec(`update orders set nfts = $2 where id = $1`, o.ID, pq.Array(nonNil(o.NFTs)))
	if err != nil {
		return domain.Order{}, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.Order{}, store.ErrNotFound
	}
	return s.Order(o.ID)
}

func (s *Store) Currencies() ([]domain.Currency, error) {
	rows, err := s.db.Query(`select id, title, name, image from currencies order by position asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Currency, 0, 8)
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.ID, &c.Title, &c.Name, &c.Image); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Currency(id string) (domain.Currency, error) {
	var c domain.Currency
	err := s.db.QueryRow(`select id, title, name, image from currencies where id = $1`, id).
		Scan(&c.ID, &c.Title, &c.Name, &c.Image)
	return c, notFound(err)
}

func (s *Store) Pay(orderID, currencyID string) (domain.Payment, error) {
	if _, err := s.Currency(currencyID); err != nil {
		return domain.Payment{}, err
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return domain.Payment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var nfts []string
	err = tx.QueryRow(`select nfts from orders where id = $1 for update`, orderID).Scan(pq.Array(&nfts))
	if err != nil {
		return domain.Payment{}, notFound(err)
	}

	payment := domain.Payment{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Success: len(nfts) > 0,
	}
	if payment.Success {
		if _, err := tx.Exec(`update orders set nfts = '{}' where id = $1`, orderID); err != nil {
			return domain.Payment{}, err
		}
	}
	if _, err := tx.Exec(
		`insert into payments(id, order_id, currency_id, success) values ($1, $2, $3, $4)`,
		payment.ID, orderID, currencyID, payment.Success,
	); err != nil {
		return domain.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCollection(row scanner) (domain.Collection, error) {
	var c domain.Collection
	err := row.Scan(&c.ID, &c.Name, &c.Cover, pq.Array(&c.NFTs), &c.Description, &c.Author, &c.CreatedAt)
	return c, err
}

func scanNFT(row scanner) (domain.NFT, error) {
	var n domain.NFT
	err := row.Scan(&n.ID, &n.Name, pq.Array(&n.Images), &n.Rating, &n.Price, &n.Author, &n.Description, &n.CreatedAt)
	return n, err
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Avatar, &u.Description, &u.Website, pq.Array(&u.NFTs), &u.Rating)
	return u, err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
