package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-api/pkg/config"
)

// NewPool crea el pool de conexiones, registra el codec NUMERIC <-> decimal y hace ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func buildPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(preferIPv4(cfg.ConnectionString()))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// Docker suele no tener IPv6; si el host resuelve a IPv4 se marca tcp4.
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		d := &net.Dialer{Timeout: 10 * time.Second}
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		if ip, err := resolveIPv4(ctx, host); err == nil {
			return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
		}
		return d.DialContext(ctx, network, addr)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = min(2, cfg.MaxConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Cantidades y precios son NUMERIC: todas las conexiones deben escanear a decimal.Decimal.
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// preferIPv4 reemplaza el host del DSN por su IPv4 cuando existe. Deja el DSN intacto si no es URL.
func preferIPv4(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ip, err := resolveIPv4(context.Background(), u.Hostname())
	if err != nil {
		return dsn
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

func resolveIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("%s sin IPv4", host)
	}
	return ips[0].String(), nil
}
