package ledger

// SeedBalance is a test helper that sets an account balance directly when
// using the in-memory account store.
func SeedBalance(s AccountStore, id string, amount int64) {
	if mem, ok := s.(*inMemoryAccounts); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		account := mem.accounts[id]
		account.Balance = amount
		mem.accounts[id] = account
	}
}
