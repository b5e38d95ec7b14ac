package domain

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (f *FighterComponent) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	f.HP -= amount
	return f.HP <= 0
}

// Heal лечит, не поднимая здоровье выше MaxHP и не опуская его.
func (f *FighterComponent) Heal(amount int) {
	if amount <= 0 {
		return
	}
	f.HP += amount
	if f.HP > f.MaxHP {
		f.HP = f.MaxHP
	}
}

// IsFullHP нужен зельям лечения: на полном здоровье зелье не тратится.
func (f *FighterComponent) IsFullHP() bool {
	return f.HP >= f.MaxHP
}

// ExperienceToNextLevel - порог опыта для следующего уровня.
func (l *LevelComponent) ExperienceToNextLevel() int {
	return l.Base + l.CurrentLevel*l.Factor
}

// AddXP начисляет опыт. Возвращает true, если уровень повысился.
func (l *LevelComponent) AddXP(xp int) bool {
	l.CurrentXP += xp
	next := l.ExperienceToNextLevel()
	if l.CurrentXP < next {
		return false
	}
	l.CurrentXP -= next
	l.CurrentLevel++
	return true
}
