package simworld

import "github.com/ByteArena/box2d"

// contactListener dispatches robot/token collisions to the world's
// scoring bookkeeping. Dispatch is by pointer-identity lookup against
// the world's own body maps; no fixture filter bits are set or read
// (zones are made non-solid with the sensor flag).
type contactListener struct {
	world *World
}

func (c *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	robot, token := c.classify(contact)
	if robot == nil || token == nil {
		return
	}
	c.world.ScoringCollisions[robot.Team][token.ID] = true
}

func (c *contactListener) EndContact(contact box2d.B2ContactInterface) {
	robot, token := c.classify(contact)
	if robot == nil || token == nil {
		return
	}
	delete(c.world.ScoringCollisions[robot.Team], token.ID)
}

func (c *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
}

func (c *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

func (c *contactListener) classify(contact box2d.B2ContactInterface) (*RobotBody, *Token) {
	bodyA := contact.GetFixtureA().GetBody()
	bodyB := contact.GetFixtureB().GetBody()

	if robot, ok := c.world.robotBodies[bodyA]; ok {
		if token, ok := c.world.tokenBodies[bodyB]; ok {
			return robot, token
		}
	}
	if robot, ok := c.world.robotBodies[bodyB]; ok {
		if token, ok := c.world.tokenBodies[bodyA]; ok {
			return robot, token
		}
	}
	return nil, nil
}
