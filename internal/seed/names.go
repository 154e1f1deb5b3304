package seed

// nameSet - имена для одного языка; у мужских и женских форм одинаковая длина
type nameSet struct {
	maleFirst        []string
	femaleFirst      []string
	maleLast         []string
	femaleLast       []string
	malePatronymic   []string
	femalePatronymic []string
}

var namesByLanguage = map[string]nameSet{
	"en": {
		maleFirst:   []string{"James", "John", "Robert", "Michael", "William", "David", "Richard", "Thomas", "Daniel", "Paul"},
		femaleFirst: []string{"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Susan", "Jessica", "Sarah", "Karen", "Nancy"},
		maleLast:    []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Wilson", "Anderson", "Taylor"},
		femaleLast:  []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Wilson", "Anderson", "Taylor"},
	},
	"ru": {
		maleFirst:        []string{"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Иван", "Михаил", "Николай", "Павел"},
		femaleFirst:      []string{"Анна", "Мария", "Елена", "Ольга", "Наталья", "Татьяна", "Ирина", "Екатерина", "Светлана", "Юлия"},
		maleLast:         []string{"Иванов", "Смирнов", "Кузнецов", "Попов", "Васильев", "Петров", "Соколов", "Михайлов", "Новиков", "Фёдоров"},
		femaleLast:       []string{"Иванова", "Смирнова", "Кузнецова", "Попова", "Васильева", "Петрова", "Соколова", "Михайлова", "Новикова", "Фёдорова"},
		malePatronymic:   []string{"Александрович", "Дмитриевич", "Сергеевич", "Андреевич", "Алексеевич", "Иванович", "Михайлович", "Николаевич", "Павлович", "Петрович"},
		femalePatronymic: []string{"Александровна", "Дмитриевна", "Сергеевна", "Андреевна", "Алексеевна", "Ивановна", "Михайловна", "Николаевна", "Павловна", "Петровна"},
	},
}

func namesFor(language string) nameSet {
	if set, ok := namesByLanguage[language]; ok {
		return set
	}
	return namesByLanguage["en"]
}
