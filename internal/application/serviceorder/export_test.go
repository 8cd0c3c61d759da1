package serviceorder

// ActiveDraftLocks cantidad de mutex por borrador retenidos.
func ActiveDraftLocks(uc *DraftUseCase) int {
	uc.locksMu.Lock()
	defer uc.locksMu.Unlock()
	return len(uc.locks)
}
