package main

import (
	mysqldrv "github.com/go-sql-driver/mysql"
)

func mysqlDSNWithMultiStatements(dsn string) (string, error) {
	c, err := mysqldrv.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	c.MultiStatements = true
	c.ParseTime = true
	return c.FormatDSN(), nil
}
