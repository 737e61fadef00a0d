package survey

// Option is one closed answer of a radio question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is a closed-enumeration radio question.
type Question struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Options  []Option `json:"options"`
}

// LikertQuestion is one statement rated on the agreement scale.
type LikertQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Products is the fixed mock-shop catalog.
var Products = []Product{
	{
		ID:          1,
		Title:       "CERAMICA 1",
		Price:       "€29,90",
		Image:       "/product1.png",
		Description: "Tazza artigianale in ceramica con delicati puntini neri. Ogni pezzo è unico, modellato a mano con argilla locale di alta qualità. Perfetta per il tuo rituale del caffè mattutino.",
	},
	{
		ID:          2,
		Title:       "CERAMICA 2",
		Price:       "€29,90",
		Image:       "/product2.png",
		Description: "Elegante set di due ciotole in ceramica con affascinante pattern splash blu. Ideali per servire o come raffinato elemento decorativo. Realizzate con smalti naturali.",
	},
	{
		ID:          3,
		Title:       "CERAMICA 3",
		Price:       "€29,90",
		Image:       "/product3.png",
		Description: "Straordinaria teiera artigianale con suggestivo effetto galaxy. Argilla nera impreziosita da riflessi dorati. Un vero pezzo d'arte per le tue cerimonie del tè.",
	},
}

// ProductByID returns the catalog product with the given id.
func ProductByID(id int) (Product, bool) {
	for _, p := range Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// DemographicQuestions are the six closed demographic questions of the
// initial questionnaire.
var DemographicQuestions = []Question{
	{
		ID:    "age",
		Title: "Qual è la tua fascia d'età?",
		Options: []Option{
			{Value: "under18", Label: "<18"},
			{Value: "18-24", Label: "18-24"},
			{Value: "25-34", Label: "25-34"},
			{Value: "35-44", Label: "35-44"},
			{Value: "45-54", Label: "45-54"},
			{Value: "55-64", Label: "55-64"},
		},
	},
	{
		ID:    "gender",
		Title: "Di che genere sei?",
		Options: []Option{
			{Value: "male", Label: "Maschile"},
			{Value: "female", Label: "Femminile"},
			{Value: "other", Label: "Altro"},
		},
	},
	{
		ID:    "education",
		Title: "Qual è il tuo livello di istruzione più elevato?",
		Options: []Option{
			{Value: "elementary", Label: "Elementari"},
			{Value: "middle", Label: "Medie"},
			{Value: "diploma", Label: "Diploma"},
			{Value: "bachelor", Label: "Laurea di I livello"},
			{Value: "master", Label: "Laurea di II livello"},
			{Value: "other", Label: "Oltre"},
		},
	},
	{
		ID:    "device",
		Title: "Con quale dispositivo effettui più frequentemente acquisti online?",
		Options: []Option{
			{Value: "smartphone", Label: "Smartphone"},
			{Value: "computer", Label: "Computer (desktop/laptop)"},
			{Value: "tablet", Label: "Tablet"},
		},
	},
	{
		ID:    "financial",
		Title: "Come descriveresti la tua situazione finanziaria? Con il mio reddito...",
		Options: []Option{
			{Value: "struggle", Label: "Faccio fatica ad arrivare a fine mese"},
			{Value: "cover", Label: "Riesco solo a coprire le spese"},
			{Value: "save", Label: "Guadagno abbastanza da risparmiare o permettermi qualche extra"},
			{Value: "buy", Label: "Guadagno abbastanza da poter comprare (quasi) tutto ciò che voglio"},
		},
	},
	{
		ID:    "frequency",
		Title: "Quanto spesso effettui acquisti online?",
		Options: []Option{
			{Value: "never", Label: "Mai"},
			{Value: "yearly", Label: "Una volta all'anno"},
			{Value: "monthly", Label: "Una volta al mese"},
			{Value: "few-monthly", Label: "Qualche volta al mese"},
			{Value: "weekly", Label: "Una volta a settimana"},
		},
	},
}

// InitialLikertQuestions are the 13 statements of the initial questionnaire,
// in presentation order.
var InitialLikertQuestions = []LikertQuestion{
	{ID: "stress_financial", Text: "Quanto senti di essere stressato/a dalla tua situazione finanziaria attuale?"},
	{ID: "download_files", Text: "So come aprire i file che ho scaricato"},
	{ID: "open_tabs", Text: "So come aprire una nuova scheda nel mio Browser"},
	{ID: "find_website", Text: "Ho difficoltà a ritrovare un sito web che ho visitato in precedenza"},
	{ID: "get_tired", Text: "Mi stanco facilmente quando cerco informazioni online"},
	{ID: "end_up_sites", Text: "Mi capita di finire su siti web senza sapere come ci sono arrivato/a"},
	{ID: "confusing_structure", Text: "Trovo confusa la struttura della maggior parte dei siti web"},
	{ID: "easy_shopping", Text: "È facile fare acquisti online"},
	{ID: "buy_unavailable", Text: "Online posso acquistare prodotti che non sono disponibili nei negozi fisici"},
	{ID: "save_time", Text: "Fare acquisti online fa risparmiare tempo"},
	{ID: "easy_compare", Text: "È più facile confrontare i prodotti online"},
	{ID: "avoid_hassle", Text: "Fare acquisti online evita il fastidio di andare in negozio"},
	{ID: "enjoy_shopping", Text: "Mi piace fare acquisti online perché posso farlo in qualsiasi momento della giornata o della notte"},
}

// FinalLikertQuestions are the 8 statements of the final questionnaire.
var FinalLikertQuestions = []LikertQuestion{
	{ID: "feel_irresponsible", Text: "Mi sentirei irresponsabile se non scegliessi l'opzione di consegna più sostenibile"},
	{ID: "feel_guilty", Text: "Mi sentirei in colpa se non scegliessi l'opzione di consegna più sostenibile"},
	{ID: "feel_responsible", Text: "Mi sentirei responsabile se non contribuissi a proteggere l'ambiente"},
	{ID: "difficult_overview", Text: "È stato difficile avere una visione d'insieme delle opzioni di consegna"},
	{ID: "difficult_design", Text: "Il design della pagina ha reso difficile trovare rapidamente le informazioni rilevanti"},
	{ID: "effort_understand", Text: "Ho dovuto fare uno sforzo per comprendere le opzioni di consegna prima di scegliere"},
	{ID: "difficult_options", Text: "Le opzioni di consegna erano difficili da comprendere durante la fase di checkout"},
	{ID: "useful_descriptions", Text: "Le descrizioni relative alle opzioni di consegna sono state utili per la mia scelta"},
}

// EnvironmentalQuestion is the single categorical question of the final
// questionnaire.
var EnvironmentalQuestion = Question{
	ID:       "environmental_consideration",
	Title:    "Indica con quale frequenza ti riconosci nella seguente affermazione:",
	Subtitle: "Tengo in considerazione il potenziale impatto ambientale delle mie azioni quando prendo la maggior parte delle mie decisioni",
	Options: []Option{
		{Value: "never", Label: "Mai"},
		{Value: "rarely", Label: "Raramente"},
		{Value: "sometimes", Label: "A volte"},
		{Value: "often", Label: "Spesso"},
		{Value: "always", Label: "Sempre"},
	},
}

// LikertScale holds the 7 agreement labels shared by both questionnaires.
var LikertScale = []string{
	"Totalmente in disaccordo",
	"Molto in disaccordo",
	"Abbastanza in disaccordo",
	"Né d'accordo né in disaccordo",
	"Abbastanza d'accordo",
	"Molto d'accordo",
	"Totalmente d'accordo",
}
