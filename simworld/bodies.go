package simworld

import (
	"math"

	"github.com/ByteArena/box2d"

	"github.com/roboarena/simulator/simconfig"
)

// WallSegment is one of the 24 static segments making up the arena's
// four sides, ids assigned left-to-right then side-by-side.
type WallSegment struct {
	ID       int
	Body     *box2d.B2Body
	LastSeen [4]float64
}

// Zone is a team's sensor rectangle at the near wall. HalfX/HalfY are
// its local half-extents (HalfX along the wall-perpendicular axis,
// HalfY along the wall).
type Zone struct {
	Team  int
	Body  *box2d.B2Body
	HalfX float64
	HalfY float64
}

// Token is a movable ore or gold cube.
type Token struct {
	ID       int
	Kind     simconfig.TokenKind
	Team     int // meaningful only for Kind == TokenGold
	Body     *box2d.B2Body
	HalfSize float64
	LastSeen [4]float64
}

const (
	wallHalfLength = 0.5
	wallWidth      = 0.1
	zoneHalfWidth  = 1.0
	zoneHalfLength = 0.5
	tokenRadius    = 0.055
	tokenHeight    = 0.11
	tokenMass      = 0.02
)

func (w *World) buildWalls() {
	id := 0
	for side := 0; side < 4; side++ {
		angle := teamAngle[side]
		for offset := 0; offset < 6; offset++ {
			localX, localY := -3.0, float64(offset)-2.5
			x, y := rotate2D(localX, localY, angle)

			def := box2d.NewB2BodyDef()
			def.Type = 0 // Static body
			def.Position = box2d.MakeB2Vec2(x, y)
			def.Angle = angle
			body := w.engine.CreateBody(def)

			shape := box2d.NewB2PolygonShape()
			shape.SetAsBoxFromCenterAndAngle(wallWidth/2, wallHalfLength, box2d.MakeB2Vec2(-wallWidth/2, 0), 0)
			fixture := box2d.MakeB2FixtureDef()
			fixture.Shape = shape
			fixture.Friction = 0.5
			body.CreateFixtureFromDef(&fixture)

			w.Walls[id] = &WallSegment{
				ID:       id,
				Body:     body,
				LastSeen: [4]float64{-5, -5, -5, -5},
			}
			id++
		}
	}
}

func (w *World) buildZones() {
	for team := 0; team < 4; team++ {
		angle := teamAngle[team]
		x, y := rotate2D(-3, 0, angle)

		def := box2d.NewB2BodyDef()
		def.Type = 0 // Static body
		def.Position = box2d.MakeB2Vec2(x, y)
		def.Angle = angle
		body := w.engine.CreateBody(def)

		shape := box2d.NewB2PolygonShape()
		shape.SetAsBox(zoneHalfLength, zoneHalfWidth)
		fixture := box2d.MakeB2FixtureDef()
		fixture.Shape = shape
		fixture.IsSensor = true
		body.CreateFixtureFromDef(&fixture)

		w.Zones[team] = &Zone{
			Team:  team,
			Body:  body,
			HalfX: zoneHalfLength,
			HalfY: zoneHalfWidth,
		}
	}
}

func (w *World) addToken(placement simconfig.TokenPlacement) {
	def := box2d.NewB2BodyDef()
	def.Type = 2 // Dynamic body
	def.Position = box2d.MakeB2Vec2(placement.X, placement.Y)
	body := w.engine.CreateBody(def)

	shape := box2d.NewB2PolygonShape()
	shape.SetAsBox(tokenRadius, tokenRadius)
	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = shape
	fixture.Density = tokenMass / ((2 * tokenRadius) * (2 * tokenRadius))
	fixture.Friction = 0.5
	fixture.Restitution = 0
	body.CreateFixtureFromDef(&fixture)

	token := &Token{
		ID:       placement.Code,
		Kind:     placement.Kind,
		Team:     placement.Team,
		Body:     body,
		HalfSize: tokenRadius,
		LastSeen: [4]float64{-5, -5, -5, -5},
	}
	w.Tokens[token.ID] = token
	w.tokenBodies[body] = token
}

// RobotBody is one team's dynamic robot, built from its sanitised
// configuration record.
type RobotBody struct {
	Team int

	Body *box2d.B2Body

	HalfWidth  float64
	HalfLength float64
	Height     float64

	AxleLength   float64
	leftMaxPower float64
	rightMax     float64

	CameraHeight        float64
	FieldOfView         float64
	MarkerPixelsMinimum int
	MarkerPixelsNoise   int
	IgnoreMotionBlur    bool

	LeftPower  float64
	RightPower float64

	HasLeftZone bool
}

func newRobotBody(w *World, team int, cfg simconfig.RobotConfig, leftMax, rightMax float64) *RobotBody {
	angle := teamAngle[team]
	x, y := rotate2D(-2.75+cfg.StartX, cfg.StartY, angle)

	def := box2d.NewB2BodyDef()
	def.Type = 2 // Dynamic body
	def.Position = box2d.MakeB2Vec2(x, y)
	def.Angle = angle
	body := w.engine.CreateBody(def)

	halfLength := cfg.Length / 2
	halfWidth := cfg.Width / 2

	shape := box2d.NewB2PolygonShape()
	shape.SetAsBox(halfLength, halfWidth)
	fixture := box2d.MakeB2FixtureDef()
	fixture.Shape = shape
	fixture.Density = cfg.Mass / (cfg.Length * cfg.Width)
	fixture.Friction = 0.5
	fixture.Restitution = 0
	body.CreateFixtureFromDef(&fixture)

	return &RobotBody{
		Team:                team,
		Body:                body,
		HalfWidth:           halfWidth,
		HalfLength:          halfLength,
		Height:              cfg.Height,
		AxleLength:          cfg.AxleLength,
		leftMaxPower:        leftMax,
		rightMax:            rightMax,
		CameraHeight:        cfg.CameraHeight,
		FieldOfView:         cfg.FieldOfView,
		MarkerPixelsMinimum: cfg.MarkerPixelsMinimum,
		MarkerPixelsNoise:   cfg.MarkerPixelsNoise,
		IgnoreMotionBlur:    cfg.IgnoreMotionBlur,
	}
}

// applyMotorForce pushes each wheel's force at its axle point, in the
// direction of the robot's local +x (forward) axis.
func (r *RobotBody) applyMotorForce() {
	angle := r.Body.GetAngle()
	fx, fy := math.Cos(angle), math.Sin(angle)

	leftForceMag := (r.LeftPower / 100) * r.leftMaxPower
	leftPoint := r.Body.GetWorldPoint(box2d.MakeB2Vec2(0, r.AxleLength/2))
	r.Body.ApplyForce(box2d.MakeB2Vec2(leftForceMag*fx, leftForceMag*fy), leftPoint, true)

	rightForceMag := (r.RightPower / 100) * r.rightMax
	rightPoint := r.Body.GetWorldPoint(box2d.MakeB2Vec2(0, -r.AxleLength/2))
	r.Body.ApplyForce(box2d.MakeB2Vec2(rightForceMag*fx, rightForceMag*fy), rightPoint, true)
}

// IsMoving reports whether the robot is moving fast enough to be
// considered "in motion" for blur and marker-visibility purposes.
func (r *RobotBody) IsMoving() bool {
	return isMoving(r.Body)
}

func isMoving(body *box2d.B2Body) bool {
	v := body.GetLinearVelocity()
	speed := math.Sqrt(v.X*v.X + v.Y*v.Y)
	return speed > 0.02 || math.Abs(body.GetAngularVelocity()) > 0.05
}
