// Package ids генерирует идентификаторы записей в формате,
// принятом в хранимых коллекциях: <префикс>_<unix-мс>_<суффикс>.
package ids

import (
	"fmt"
	"math/rand"
	"time"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewTransactionID возвращает идентификатор транзакции вида tx_<timestamp>_<suffix>.
func NewTransactionID() string {
	return fmt.Sprintf("tx_%d_%s", time.Now().UnixMilli(), randomSuffix(7))
}

// NewVerificationID возвращает идентификатор заявки на верификацию
// вида ver_<timestamp>_<suffix>.
func NewVerificationID() string {
	return fmt.Sprintf("ver_%d_%s", time.Now().UnixMilli(), randomSuffix(7))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
