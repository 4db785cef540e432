// internal/game/session.go
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/event"
	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/surface"

	"github.com/google/uuid"
)

var (
	// ErrInvalidGuess - хотя бы одна координата не число.
	ErrInvalidGuess = errors.New("please enter numeric x, y, and z values")
	// ErrWrongPhase - действие недоступно в текущем состоянии.
	ErrWrongPhase = errors.New("action not allowed in current phase")
)

// Phase - состояние машины раундов.
type Phase int

const (
	Loading Phase = iota
	AwaitingGuess
	RoundResolved
	BuildFailed
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case AwaitingGuess:
		return "awaiting_guess"
	case RoundResolved:
		return "round_resolved"
	case BuildFailed:
		return "build_failed"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Scene - часть scene.Composer, которой управляет сессия.
type Scene interface {
	StartRound(c surface.Coefficients) (*mesh.Mesh, error)
	PlaceMarker(p Point3, role scene.Role)
	DrawConnector(a, b Point3)
}

// Options - необязательные зависимости сессии.
type Options struct {
	Range     float64
	Ready     <-chan struct{} // одноразовая готовность ресурсов перед первым раундом
	Presenter Presenter
	Events    *event.Dispatcher
	Logger    *log.Logger
}

// Session - явная машина состояний игры из трех раундов.
type Session struct {
	rng       surface.Source
	scene     Scene
	presenter Presenter
	events    *event.Dispatcher
	logger    *log.Logger
	rangeHalf float64
	ready     <-chan struct{}

	gameID uuid.UUID
	phase  Phase
	round  int
	coeffs surface.Coefficients
	target Point3
	scores [config.Rounds]float64
	total  float64
	last   *RoundResult
}

// NewSession создает сессию в состоянии Loading.
func NewSession(rng surface.Source, sc Scene, opts Options) *Session {
	if opts.Range <= 0 {
		opts.Range = config.DomainRange
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Session{
		rng:       rng,
		scene:     sc,
		presenter: opts.Presenter,
		events:    opts.Events,
		logger:    opts.Logger,
		rangeHalf: opts.Range,
		ready:     opts.Ready,
		gameID:    uuid.New(),
		phase:     Loading,
		round:     1,
	}
}

// Start ждет готовности ресурсов и запускает первый раунд.
func (s *Session) Start(ctx context.Context) error {
	if s.phase != Loading {
		return fmt.Errorf("start in %v: %w", s.phase, ErrWrongPhase)
	}
	if s.ready != nil {
		select {
		case <-s.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.beginFirstRound()
}

// Tick - неблокирующий вариант Start для покадрового цикла.
// Возвращает true, если первый раунд был запущен на этом тике.
func (s *Session) Tick() bool {
	if s.phase != Loading {
		return false
	}
	if s.ready != nil {
		select {
		case <-s.ready:
		default:
			return false
		}
	}
	// ошибка построения уже залогирована и переведена в BuildFailed
	_ = s.beginFirstRound()
	return true
}

func (s *Session) beginFirstRound() error {
	s.ready = nil // дальше раунды никогда не ждут
	return s.startRound(1)
}

// startRound генерирует поверхность и цель. Если поверхность не построилась,
// цель не выбирается и сессия остается в BuildFailed.
func (s *Session) startRound(round int) error {
	s.round = round
	s.last = nil
	s.coeffs = surface.RandomCoefficients(s.rng)
	equation := s.coeffs.String()
	s.presenter.ShowEquation(equation)

	m, err := s.scene.StartRound(s.coeffs)
	if err != nil {
		s.phase = BuildFailed
		s.logger.Printf("ERROR: building surface for round %d: %v", round, err)
		s.presenter.ShowDiagnostic("Error building surface: " + err.Error())
		s.dispatch(event.SurfaceBuildFailed, nil, err)
		return err
	}

	x := surface.Uniform(s.rng, -s.rangeHalf, s.rangeHalf)
	y := surface.Uniform(s.rng, -s.rangeHalf, s.rangeHalf)
	s.target = Point3{X: x, Y: y, Z: surface.Evaluate(x, y, s.coeffs)}
	s.phase = AwaitingGuess

	b := m.Bounds
	s.presenter.ShowDiagnostic(fmt.Sprintf(
		"Vertices: %d  |  Bounds: [%.1f,%.1f,%.1f] → [%.1f,%.1f,%.1f]",
		m.VertexCount(), b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z))
	s.presenter.ShowRound(RoundInfo{
		Round:    round,
		Rounds:   config.Rounds,
		Equation: equation,
		TargetX:  x,
		TargetY:  y,
		Total:    s.total,
	})
	s.dispatch(event.RoundStarted, nil, nil)
	return nil
}

// Retry повторяет построение раунда после ошибки.
func (s *Session) Retry() error {
	if s.phase != BuildFailed {
		return fmt.Errorf("retry in %v: %w", s.phase, ErrWrongPhase)
	}
	return s.startRound(s.round)
}

// ParseGuess разбирает три текстовых поля. Любое нечисловое значение - ErrInvalidGuess.
func ParseGuess(xs, ys, zs string) (Point3, error) {
	var v [3]float64
	for i, raw := range []string{xs, ys, zs} {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Point3{}, fmt.Errorf("%w: %q", ErrInvalidGuess, raw)
		}
		v[i] = f
	}
	return Point3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// Submit - ввод из UI: разбор полей и SubmitGuess. Ошибка ввода показывается игроку.
func (s *Session) Submit(xs, ys, zs string) (RoundResult, error) {
	guess, err := ParseGuess(xs, ys, zs)
	if err != nil {
		s.presenter.ShowInvalidGuess(err)
		return RoundResult{}, err
	}
	return s.SubmitGuess(guess)
}

// SubmitGuess оценивает догадку для текущего раунда.
func (s *Session) SubmitGuess(guess Point3) (RoundResult, error) {
	if s.phase != AwaitingGuess {
		return RoundResult{}, fmt.Errorf("submit in %v: %w", s.phase, ErrWrongPhase)
	}
	if !guess.IsFinite() {
		return RoundResult{}, ErrInvalidGuess
	}

	truth := Point3{X: s.target.X, Y: s.target.Y, Z: surface.Evaluate(s.target.X, s.target.Y, s.coeffs)}
	score := ScoreGuess(truth, guess, s.rangeHalf)
	s.scores[s.round-1] = score.Points
	s.total = sumScores(s.scores)

	s.scene.PlaceMarker(truth, scene.RoleTrue)
	s.scene.PlaceMarker(guess, scene.RoleGuess)
	s.scene.DrawConnector(truth, guess)

	result := RoundResult{
		Round:  s.round,
		Rounds: config.Rounds,
		Guess:  guess,
		Truth:  truth,
		Score:  score,
		Total:  s.total,
		Final:  s.round >= config.Rounds,
	}
	s.last = &result
	s.phase = RoundResolved
	s.presenter.ShowResult(result)
	s.dispatch(event.GuessScored, &result, nil)
	return result, nil
}

// Advance переходит к следующему раунду или завершает игру после третьего.
func (s *Session) Advance() error {
	if s.phase != RoundResolved {
		return fmt.Errorf("advance in %v: %w", s.phase, ErrWrongPhase)
	}
	if s.round < config.Rounds {
		return s.startRound(s.round + 1)
	}
	s.phase = GameOver
	s.dispatch(event.GameOver, s.last, nil)
	return nil
}

// Restart сбрасывает очки и начинает новую игру с первого раунда из любого состояния.
// В Loading только сбрасывает очки: первый раунд по-прежнему ждет готовности ресурсов.
func (s *Session) Restart() error {
	s.scores = [config.Rounds]float64{}
	s.total = sumScores(s.scores)
	if s.phase == Loading {
		return nil
	}
	s.gameID = uuid.New()
	s.ready = nil
	s.dispatch(event.GameRestarted, nil, nil)
	return s.startRound(1)
}

// Phase возвращает текущее состояние.
func (s *Session) Phase() Phase { return s.phase }

// Round возвращает номер текущего раунда (1..Rounds).
func (s *Session) Round() int { return s.round }

// Scores возвращает очки по раундам.
func (s *Session) Scores() [config.Rounds]float64 { return s.scores }

// Total возвращает сумму очков.
func (s *Session) Total() float64 { return s.total }

// Coefficients возвращает коэффициенты текущей поверхности.
func (s *Session) Coefficients() surface.Coefficients { return s.coeffs }

// Target возвращает скрытую точку текущего раунда.
func (s *Session) Target() Point3 { return s.target }

// GameID - идентификатор текущей игры (меняется при Restart).
func (s *Session) GameID() uuid.UUID { return s.gameID }

func sumScores(scores [config.Rounds]float64) float64 {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	return total
}
