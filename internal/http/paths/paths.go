// Package paths содержит адреса страниц, на которые ссылаются обработчики.
package paths

import (
	"net/url"
	"strings"
)

const (
	Home      = "/"
	Contact   = "/#contato"
	Login     = "/sistema/login"
	Logout    = "/sistema/logout"
	Dashboard = "/sistema/dashboard"
)

// LoginWithNext возвращает адрес страницы входа с возвратом на target.
func LoginWithNext(target string) string {
	if SafeNext(target) == "" {
		return Login
	}
	return Login + "?" + url.Values{"next": {target}}.Encode()
}

// SafeNext возвращает target, если это локальный путь сайта, иначе пустую строку.
// Абсолютные URL и адреса вида //host отбрасываются.
func SafeNext(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return ""
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return ""
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return target
}
